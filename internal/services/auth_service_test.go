package services

import (
	"context"
	"errors"
	"testing"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/anonto42/nano-blog/backend/internal/apperrors"
	"github.com/anonto42/nano-blog/backend/internal/auth"
	"github.com/anonto42/nano-blog/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (*AuthService, *auth.TokenManager) {
	t.Helper()
	db := testutil.NewDB(t)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	s := NewAuthService(db, tokens)
	s.hashCost = bcrypt.MinCost
	return s, tokens
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	s, _ := newAuthService(t)

	user, err := s.Register(ctx, "  alice ", "alice@example.com", "secret")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)

	t.Run("missing fields", func(t *testing.T) {
		_, err := s.Register(ctx, "bob", "   ", "secret")
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		assert.EqualError(t, err, "All fields are required")
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := s.Register(ctx, "alice", "other@example.com", "secret")
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
		assert.EqualError(t, err, "Username already exists")
	})

	t.Run("duplicate email with a new username", func(t *testing.T) {
		_, err := s.Register(ctx, "alice2", "alice@example.com", "secret")
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
		assert.EqualError(t, err, "Email already exists")
	})

	t.Run("username is checked before email", func(t *testing.T) {
		_, err := s.Register(ctx, "alice", "alice@example.com", "secret")
		assert.EqualError(t, err, "Username already exists")
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	s, tokens := newAuthService(t)

	registered, err := s.Register(ctx, "alice", "alice@example.com", "secret")
	require.NoError(t, err)

	for _, identifier := range []string{"alice", "alice@example.com"} {
		token, err := s.Authenticate(ctx, identifier, "secret")
		require.NoError(t, err, identifier)

		userID, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, userID)
	}

	_, err = s.Authenticate(ctx, "alice", "wrong")
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuth))
	assert.EqualError(t, err, "Invalid credentials")

	_, err = s.Authenticate(ctx, "nobody", "secret")
	assert.EqualError(t, err, "Invalid credentials")

	_, err = s.Authenticate(ctx, "", "secret")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

type fakeVerifier struct {
	token *fbauth.Token
	err   error
}

func (f fakeVerifier) VerifyIDToken(context.Context, string) (*fbauth.Token, error) {
	return f.token, f.err
}

func TestAuthenticateFirebase(t *testing.T) {
	ctx := context.Background()
	s, tokens := newAuthService(t)

	_, err := s.AuthenticateFirebase(ctx, "token")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound), "disabled without a verifier")

	registered, err := s.Register(ctx, "alice", "alice@example.com", "secret")
	require.NoError(t, err)

	s.WithFirebase(fakeVerifier{token: &fbauth.Token{Claims: map[string]interface{}{"email": "alice@example.com"}}})
	require.True(t, s.FirebaseEnabled())

	token, err := s.AuthenticateFirebase(ctx, "token")
	require.NoError(t, err)
	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)

	s.WithFirebase(fakeVerifier{token: &fbauth.Token{Claims: map[string]interface{}{"email": "ghost@example.com"}}})
	_, err = s.AuthenticateFirebase(ctx, "token")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	s.WithFirebase(fakeVerifier{err: errors.New("expired")})
	_, err = s.AuthenticateFirebase(ctx, "token")
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuth))
}
