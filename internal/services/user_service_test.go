package services

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/isdelr/chroniclex-be/internal/apperr"
	"github.com/isdelr/chroniclex-be/internal/auth"
	"github.com/isdelr/chroniclex-be/internal/database"
	"github.com/isdelr/chroniclex-be/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSignup(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	user, err := env.users.Signup(ctx, SignupInput{Username: "alice", Email: "alice@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Empty(t, user.Blogs)

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "s3cret-pass")
	assert.NotContains(t, string(raw), "password")
}

func TestSignup_Validation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.users.Signup(ctx, SignupInput{Username: "taken", Email: "t@example.com", Password: "pw"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input SignupInput
	}{
		{"missing username", SignupInput{Email: "a@example.com", Password: "pw"}},
		{"missing email", SignupInput{Username: "bob", Password: "pw"}},
		{"missing password", SignupInput{Username: "bob", Email: "b@example.com"}},
		{"bad email", SignupInput{Username: "bob", Email: "not-an-email", Password: "pw"}},
		{"bad username chars", SignupInput{Username: "bob smith", Email: "b@example.com", Password: "pw"}},
		{"username too long", SignupInput{Username: strings.Repeat("a", 151), Email: "b@example.com", Password: "pw"}},
		{"duplicate username", SignupInput{Username: "taken", Email: "other@example.com", Password: "pw"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.users.Signup(ctx, tc.input)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestLogin_StableTokenUntilLogout(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	signed, err := env.users.Signup(ctx, SignupInput{Username: "alice", Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)

	first, err := env.users.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Len(t, first.Token, 40)
	assert.Equal(t, signed.ID, first.UserID)
	assert.Equal(t, "alice", first.Username)
	assert.Equal(t, "alice@example.com", first.Email)

	second, err := env.users.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, first.Token, second.Token)

	actor, err := env.users.ResolveToken(ctx, first.Token)
	require.NoError(t, err)
	require.NoError(t, env.users.Logout(ctx, actor))

	_, err = env.users.ResolveToken(ctx, first.Token)
	assert.ErrorIs(t, err, apperr.ErrAuthentication)

	third, err := env.users.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, third.Token)
}

func TestLogin_UniformFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.users.Signup(ctx, SignupInput{Username: "alice", Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)

	_, wrongPassword := env.users.Login(ctx, "alice", "nope")
	_, unknownUser := env.users.Login(ctx, "mallory", "pw")

	assert.ErrorIs(t, wrongPassword, apperr.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, apperr.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())

	_, err = env.users.Login(ctx, "", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestLogout_OnlyRevokesOwnToken(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	for _, name := range []string{"alice", "bob"} {
		_, err := env.users.Signup(ctx, SignupInput{Username: name, Email: name + "@example.com", Password: "pw"})
		require.NoError(t, err)
	}
	alice, err := env.users.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	bob, err := env.users.Login(ctx, "bob", "pw")
	require.NoError(t, err)

	aliceActor, err := env.users.ResolveToken(ctx, alice.Token)
	require.NoError(t, err)
	require.NoError(t, env.users.Logout(ctx, aliceActor))

	_, err = env.users.ResolveToken(ctx, alice.Token)
	assert.ErrorIs(t, err, apperr.ErrAuthentication)

	bobActor, err := env.users.ResolveToken(ctx, bob.Token)
	require.NoError(t, err)
	assert.Equal(t, "bob", bobActor.Username)

	assert.ErrorIs(t, env.users.Logout(ctx, aliceActor), apperr.ErrAuthentication, "second logout with a revoked token")
}

func TestLogout_Anonymous(t *testing.T) {
	env := newTestEnv(t)
	err := env.users.Logout(context.Background(), nil)
	assert.ErrorIs(t, err, apperr.ErrAuthentication)

	err = env.users.Logout(context.Background(), &auth.Actor{})
	assert.ErrorIs(t, err, apperr.ErrAuthentication)
}

func TestSignup_BlogsComeFromStore(t *testing.T) {
	ctx := context.Background()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(ctx, db))

	users := &recordingUserRepository{
		UserRepository: repository.NewSQLiteUserRepository(db),
		blogIDs:        []string{"b-1", "b-2"},
	}
	svc, err := NewUserService(users, repository.NewSQLiteTokenRepository(db), bcrypt.MinCost)
	require.NoError(t, err)

	user, err := svc.Signup(ctx, SignupInput{Username: "carol", Email: "carol@example.com", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, 1, users.getByIDCalls)
	assert.Equal(t, 1, users.listBlogIDsCalls)
	assert.Equal(t, []string{"b-1", "b-2"}, user.Blogs)
	assert.Equal(t, "carol", user.Username)
}
