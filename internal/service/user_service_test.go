package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/domain"
	"github.com/spec-kit/auth-service/internal/repository"
)

func newTestUserService(repo *mockUserRepository) *UserService {
	return NewUserService(repo, auth.NewBcryptHasher(bcrypt.MinCost))
}

func TestUserServiceCurrent(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepository{}
	svc := newTestUserService(repo)

	user := &domain.User{ID: "u-1", Email: "test@example.com"}
	repo.On("GetByEmail", ctx, "test@example.com").Return(user, nil)
	repo.On("GetByEmail", ctx, "gone@example.com").Return(nil, repository.ErrNotFound)

	got, err := svc.Current(ctx, &auth.Principal{Email: "test@example.com"})
	require.NoError(t, err)
	assert.Same(t, user, got)

	_, err = svc.Current(ctx, &auth.Principal{Email: "gone@example.com"})
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Current(ctx, nil)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserServiceUpdate(t *testing.T) {
	ctx := context.Background()
	in := UpdateUserInput{
		Username: "renamed",
		Email:    "new@example.com",
		Password: "new-password",
		Name:     "New Name",
		Roles:    []domain.Role{domain.RoleAdmin},
	}

	t.Run("overwrites fields and rehashes", func(t *testing.T) {
		repo := &mockUserRepository{}
		svc := newTestUserService(repo)
		repo.On("GetByID", ctx, "u-1").Return(&domain.User{ID: "u-1", Email: "old@example.com", PasswordHash: "old"}, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := svc.Update(ctx, "u-1", in)
		require.NoError(t, err)
		assert.Equal(t, "renamed", user.Username)
		assert.Equal(t, "new@example.com", user.Email)
		assert.Equal(t, "New Name", user.Name)
		assert.Equal(t, []domain.Role{domain.RoleAdmin}, user.Roles)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new-password")))
	})

	t.Run("keeps roles when asked", func(t *testing.T) {
		repo := &mockUserRepository{}
		svc := newTestUserService(repo)
		repo.On("GetByID", ctx, "u-1").Return(&domain.User{ID: "u-1", Roles: []domain.Role{domain.RoleUser}}, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		keep := in
		keep.KeepRoles = true
		user, err := svc.Update(ctx, "u-1", keep)
		require.NoError(t, err)
		assert.Equal(t, []domain.Role{domain.RoleUser}, user.Roles)
	})

	t.Run("missing record", func(t *testing.T) {
		repo := &mockUserRepository{}
		svc := newTestUserService(repo)
		repo.On("GetByID", ctx, "u-404").Return(nil, repository.ErrNotFound)

		_, err := svc.Update(ctx, "u-404", in)
		require.ErrorIs(t, err, ErrUserNotFound)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("email taken", func(t *testing.T) {
		repo := &mockUserRepository{}
		svc := newTestUserService(repo)
		repo.On("GetByID", ctx, "u-1").Return(&domain.User{ID: "u-1"}, nil)
		repo.On("Update", ctx, mock.Anything).Return(repository.ErrDuplicateEmail)

		_, err := svc.Update(ctx, "u-1", in)
		require.ErrorIs(t, err, ErrDuplicateEmail)
	})
}

func TestUserServiceDeleteAndList(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepository{}
	svc := newTestUserService(repo)

	repo.On("Delete", ctx, "u-1").Return(nil)
	repo.On("Delete", ctx, "u-404").Return(repository.ErrNotFound)
	repo.On("List", ctx).Return([]*domain.User{{ID: "u-1"}, {ID: "u-2"}}, nil)

	require.NoError(t, svc.Delete(ctx, "u-1"))
	require.ErrorIs(t, svc.Delete(ctx, "u-404"), ErrUserNotFound)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
