package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/isdelr/chroniclex-be/internal/apperr"
	"github.com/isdelr/chroniclex-be/internal/auth"
	"github.com/isdelr/chroniclex-be/internal/models"
	"github.com/isdelr/chroniclex-be/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for account and token services.
type UserServiceProvider interface {
	Signup(ctx context.Context, input SignupInput) (models.PublicUser, error)
	Login(ctx context.Context, username, password string) (models.LoginResult, error)
	Logout(ctx context.Context, actor *auth.Actor) error
	ResolveToken(ctx context.Context, key string) (*auth.Actor, error)
}

// SignupInput carries the fields of a registration request.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// UserService provides business logic for user management.
type UserService struct {
	users      repository.UserRepository
	tokens     repository.TokenRepository
	bcryptCost int
	// dummyHash is compared against on unknown usernames so that a failed
	// login costs the same whether or not the user exists.
	dummyHash []byte
	newKey    func() (string, error)
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository, tokens repository.TokenRepository, bcryptCost int) (*UserService, error) {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("chroniclex-dummy-password"), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash dummy password: %w", err)
	}
	return &UserService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
		newKey:     auth.GenerateKey,
	}, nil
}

// Signup creates a new user, hashing their password.
func (s *UserService) Signup(ctx context.Context, input SignupInput) (models.PublicUser, error) {
	if err := validateUsername(input.Username); err != nil {
		return models.PublicUser{}, err
	}
	if err := validateEmail(input.Email); err != nil {
		return models.PublicUser{}, err
	}
	if input.Password == "" {
		return models.PublicUser{}, validationError("password is required")
	}

	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return models.PublicUser{}, validationError("a user with that username already exists")
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return models.PublicUser{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return models.PublicUser{}, validationError("password is too long")
		}
		return models.PublicUser{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return models.PublicUser{}, validationError("a user with that username already exists")
		}
		return models.PublicUser{}, err
	}

	stored, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return models.PublicUser{}, err
	}
	blogIDs, err := s.users.ListBlogIDs(ctx, stored.ID)
	if err != nil {
		return models.PublicUser{}, err
	}

	log.Info().Str("user_id", stored.ID).Str("username", stored.Username).Msg("User signed up")
	return stored.Public(blogIDs), nil
}

// Login verifies the credentials and returns the user's token, creating it on first login.
func (s *UserService) Login(ctx context.Context, username, password string) (models.LoginResult, error) {
	if username == "" || password == "" {
		return models.LoginResult{}, validationError("username and password are required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			return models.LoginResult{}, err
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return models.LoginResult{}, apperr.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.LoginResult{}, apperr.ErrInvalidCredentials
	}

	key, err := s.newKey()
	if err != nil {
		return models.LoginResult{}, err
	}
	token, err := s.tokens.GetOrCreate(ctx, user.ID, key)
	if err != nil {
		return models.LoginResult{}, err
	}

	return models.LoginResult{
		Token:    token.Key,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// Logout deletes the actor's token. The token stops working immediately.
func (s *UserService) Logout(ctx context.Context, actor *auth.Actor) error {
	if !actor.Authenticated() {
		return fmt.Errorf("%w: authentication credentials were not provided", apperr.ErrAuthentication)
	}

	if err := s.tokens.DeleteByUser(ctx, actor.ID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("%w: token already revoked", apperr.ErrAuthentication)
		}
		return fmt.Errorf("%w: %w", apperr.ErrInternal, err)
	}

	log.Info().Str("user_id", actor.ID).Msg("User logged out")
	return nil
}

// ResolveToken maps a token key to its actor. Unknown keys are an authentication error.
func (s *UserService) ResolveToken(ctx context.Context, key string) (*auth.Actor, error) {
	user, err := s.tokens.GetUserByKey(ctx, key)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid token", apperr.ErrAuthentication)
		}
		return nil, err
	}
	return &auth.Actor{ID: user.ID, Username: user.Username, Email: user.Email, Token: key}, nil
}
