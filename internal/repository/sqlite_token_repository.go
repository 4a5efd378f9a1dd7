package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/isdelr/chroniclex-be/internal/apperr"
	"github.com/isdelr/chroniclex-be/internal/models"
)

// SQLiteTokenRepository implements TokenRepository on top of SQLite.
type SQLiteTokenRepository struct {
	db *sql.DB
}

// NewSQLiteTokenRepository creates a new SQLiteTokenRepository.
func NewSQLiteTokenRepository(db *sql.DB) *SQLiteTokenRepository {
	return &SQLiteTokenRepository{db: db}
}

// GetOrCreate returns the user's token, inserting newKey if there is none.
// Concurrent logins of the same user observe the same key.
func (r *SQLiteTokenRepository) GetOrCreate(ctx context.Context, userID, newKey string) (models.Token, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO auth_tokens (key, user_id) VALUES (?, ?)
		ON CONFLICT(user_id) DO NOTHING
	`, newKey, userID)
	if err != nil {
		return models.Token{}, fmt.Errorf("create token: %w", err)
	}

	var token models.Token
	err = r.db.QueryRowContext(ctx,
		"SELECT key, user_id, created_at FROM auth_tokens WHERE user_id = ?", userID).
		Scan(&token.Key, &token.UserID, &token.CreatedAt)
	if err != nil {
		return models.Token{}, fmt.Errorf("get token: %w", err)
	}
	return token, nil
}

// GetUserByKey resolves a token key to the user that owns it.
func (r *SQLiteTokenRepository) GetUserByKey(ctx context.Context, key string) (models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx, `
		SELECT u.id, u.username, u.email, u.password_hash, u.created_at
		FROM auth_tokens t JOIN users u ON u.id = t.user_id
		WHERE t.key = ?
	`, key).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("token: %w", apperr.ErrNotFound)
		}
		return models.User{}, fmt.Errorf("get user by token: %w", err)
	}
	return user, nil
}

// DeleteByUser removes the user's token. It reports ErrNotFound if there was none.
func (r *SQLiteTokenRepository) DeleteByUser(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM auth_tokens WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("token of user %s: %w", userID, apperr.ErrNotFound)
	}
	return nil
}
