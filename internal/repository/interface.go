// Package repository holds the persistence interfaces of the API and their
// SQLite implementations.
package repository

import (
	"context"
	"errors"

	"github.com/isdelr/chroniclex-be/internal/models"
)

// ErrUsernameTaken is returned by UserRepository.Create on a duplicate username.
var ErrUsernameTaken = errors.New("username already taken")

// UserRepository stores user accounts.
type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	ListBlogIDs(ctx context.Context, userID string) ([]string, error)
}

// TokenRepository stores the bearer token of each user.
type TokenRepository interface {
	// GetOrCreate returns the existing token of the user, or stores newKey as its token.
	GetOrCreate(ctx context.Context, userID, newKey string) (models.Token, error)
	// GetUserByKey resolves a token key to its owner.
	GetUserByKey(ctx context.Context, key string) (models.User, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// BlogRepository stores blog posts.
type BlogRepository interface {
	Create(ctx context.Context, blog models.Blog) error
	GetByID(ctx context.Context, id string) (models.Blog, error)
	List(ctx context.Context, filter models.BlogFilter) ([]models.Blog, error)
	Update(ctx context.Context, blog models.Blog) error
	Delete(ctx context.Context, id string) error
}
