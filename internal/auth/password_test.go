package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/auth-service/internal/domain"
	"github.com/spec-kit/auth-service/internal/repository"
)

type stubLookup struct {
	users map[string]*domain.User
	err   error
	calls int
}

func (s *stubLookup) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hashed, err := h.Hash("password")
	require.NoError(t, err)
	assert.NotEqual(t, "password", hashed)
	assert.NoError(t, h.Compare(hashed, "password"))
	assert.Error(t, h.Compare(hashed, "Password"))

	_, err = h.Hash(strings.Repeat("p", MaxPasswordBytes))
	assert.NoError(t, err)
	_, err = h.Hash(strings.Repeat("p", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).Cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).Cost)
}

func TestPasswordAuthenticatorVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hashed, err := h.Hash("password")
	require.NoError(t, err)

	lookup := &stubLookup{users: map[string]*domain.User{
		"test@example.com": {Email: "test@example.com", PasswordHash: hashed},
	}}
	a := NewPasswordAuthenticator(lookup, h)
	ctx := context.Background()

	t.Run("correct credentials", func(t *testing.T) {
		require.NoError(t, a.Verify(ctx, "test@example.com", "password"))
	})

	t.Run("wrong password", func(t *testing.T) {
		require.ErrorIs(t, a.Verify(ctx, "test@example.com", "nope"), ErrBadCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		require.ErrorIs(t, a.Verify(ctx, "ghost@example.com", "password"), ErrBadCredentials)
	})

	t.Run("store failure passes through", func(t *testing.T) {
		boom := errors.New("connection refused")
		failing := NewPasswordAuthenticator(&stubLookup{err: boom}, h)
		err := failing.Verify(ctx, "test@example.com", "password")
		require.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrBadCredentials)
	})
}
