package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/isdelr/chroniclex-be/internal/database"
	"github.com/isdelr/chroniclex-be/internal/models"
	"github.com/isdelr/chroniclex-be/internal/repository"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	users *UserService
	blogs *BlogService
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))

	users, err := NewUserService(
		repository.NewSQLiteUserRepository(db),
		repository.NewSQLiteTokenRepository(db),
		bcrypt.MinCost,
	)
	require.NoError(t, err)

	return testEnv{
		users: users,
		blogs: NewBlogService(repository.NewSQLiteBlogRepository(db)),
	}
}

// recordingUserRepository counts the reads Signup makes after inserting a user.
type recordingUserRepository struct {
	repository.UserRepository
	getByIDCalls     int
	listBlogIDsCalls int
	blogIDs          []string
}

func (r *recordingUserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	r.getByIDCalls++
	return r.UserRepository.GetByID(ctx, id)
}

func (r *recordingUserRepository) ListBlogIDs(ctx context.Context, userID string) ([]string, error) {
	r.listBlogIDsCalls++
	if r.blogIDs != nil {
		return r.blogIDs, nil
	}
	return r.UserRepository.ListBlogIDs(ctx, userID)
}

func strPtr(s string) *string { return &s }
