package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/isdelr/chroniclex-be/internal/apperr"
	"github.com/isdelr/chroniclex-be/internal/database"
	"github.com/isdelr/chroniclex-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

func seedUser(t *testing.T, repo *SQLiteUserRepository, id, username string) models.User {
	t.Helper()
	u := models.User{ID: id, Username: username, Email: username + "@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteUserRepository(newTestDB(t))

	seedUser(t, repo, "u1", "alice")

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	got, err = repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	repo := NewSQLiteUserRepository(newTestDB(t))
	seedUser(t, repo, "u1", "alice")

	err := repo.Create(context.Background(), models.User{ID: "u2", Username: "alice", Email: "x@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestTokenRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewSQLiteUserRepository(db)
	tokens := NewSQLiteTokenRepository(db)
	seedUser(t, users, "u1", "alice")

	first, err := tokens.GetOrCreate(ctx, "u1", "key-1")
	require.NoError(t, err)
	assert.Equal(t, "key-1", first.Key)

	second, err := tokens.GetOrCreate(ctx, "u1", "key-2")
	require.NoError(t, err)
	assert.Equal(t, "key-1", second.Key, "existing token must be reused")

	owner, err := tokens.GetUserByKey(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", owner.Username)

	require.NoError(t, tokens.DeleteByUser(ctx, "u1"))

	_, err = tokens.GetUserByKey(ctx, "key-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, tokens.DeleteByUser(ctx, "u1"), apperr.ErrNotFound)
}

func TestBlogRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewSQLiteUserRepository(db)
	blogs := NewSQLiteBlogRepository(db)
	seedUser(t, users, "u1", "alice")

	now := time.Now().Truncate(time.Second)
	require.NoError(t, blogs.Create(ctx, models.Blog{ID: "b1", Title: "t", Content: "c", PublicationDate: now, Author: "u1"}))

	got, err := blogs.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.AuthorUsername)
	assert.True(t, now.Equal(got.PublicationDate))

	got.Title = "new"
	require.NoError(t, blogs.Update(ctx, got))
	got, err = blogs.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)

	ids, err := users.ListBlogIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, ids)

	require.NoError(t, blogs.Delete(ctx, "b1"))
	assert.ErrorIs(t, blogs.Delete(ctx, "b1"), apperr.ErrNotFound)
	assert.ErrorIs(t, blogs.Update(ctx, got), apperr.ErrNotFound)
	_, err = blogs.GetByID(ctx, "b1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestBlogRepository_ListOrderAndFilter(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewSQLiteUserRepository(db)
	blogs := NewSQLiteBlogRepository(db)
	seedUser(t, users, "u1", "alice")
	seedUser(t, users, "u2", "bob")

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	fixtures := []models.Blog{
		{ID: "a-old", Author: "u1", PublicationDate: base},
		{ID: "b-mid", Author: "u2", PublicationDate: base.Add(time.Hour)},
		{ID: "a-new", Author: "u1", PublicationDate: base.Add(2 * time.Hour)},
	}
	for _, b := range fixtures {
		b.Title, b.Content = "t", "c"
		require.NoError(t, blogs.Create(ctx, b))
	}

	all, err := blogs.List(ctx, models.BlogFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a-new", "b-mid", "a-old"}, blogIDs(all))

	onlyAlice, err := blogs.List(ctx, models.ByUsername("alice"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a-new", "a-old"}, blogIDs(onlyAlice))

	none, err := blogs.List(ctx, models.ByUsername("nobody"))
	require.NoError(t, err)
	assert.Empty(t, none)

	emptyName, err := blogs.List(ctx, models.ByUsername(""))
	require.NoError(t, err)
	assert.Empty(t, emptyName, "an explicit empty username matches no author")
}

func blogIDs(blogs []models.Blog) []string {
	ids := make([]string, 0, len(blogs))
	for _, b := range blogs {
		ids = append(ids, b.ID)
	}
	return ids
}
