package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/isdelr/chroniclex-be/internal/apperr"
	"github.com/isdelr/chroniclex-be/internal/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteUserRepository implements UserRepository on top of SQLite.
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new SQLiteUserRepository.
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Create inserts a new user.
func (r *SQLiteUserRepository) Create(ctx context.Context, user models.User) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, username, email, password_hash) VALUES (?, ?, ?, ?)",
		user.ID, user.Username, user.Email, user.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by id.
func (r *SQLiteUserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.getOne(ctx, "id", id)
}

// GetByUsername retrieves a user by username, including the password hash.
func (r *SQLiteUserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return r.getOne(ctx, "username", username)
}

func (r *SQLiteUserRepository) getOne(ctx context.Context, column, value string) (models.User, error) {
	var user models.User
	row := r.db.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash, created_at FROM users WHERE "+column+" = ?", value)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user with %s %s: %w", column, value, apperr.ErrNotFound)
		}
		return models.User{}, fmt.Errorf("get user by %s: %w", column, err)
	}
	return user, nil
}

// ListBlogIDs returns the ids of the posts authored by a user, newest first.
func (r *SQLiteUserRepository) ListBlogIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id FROM blogs WHERE author_id = ? ORDER BY publication_date DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("list blog ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan blog id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
