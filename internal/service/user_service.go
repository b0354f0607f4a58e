package service

import (
	"context"
	"errors"

	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/domain"
	"github.com/spec-kit/auth-service/internal/repository"
)

// UpdateUserInput replaces the mutable fields of a credential record.
// Roles is ignored when KeepRoles is set.
type UpdateUserInput struct {
	Username  string
	Email     string
	Password  string
	Name      string
	Roles     []domain.Role
	KeepRoles bool
}

// UserService manages profiles of existing accounts.
type UserService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, hasher auth.PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

// Current returns the record of the authenticated principal.
func (s *UserService) Current(ctx context.Context, principal *auth.Principal) (*domain.User, error) {
	if principal == nil {
		return nil, ErrUserNotFound
	}
	user, err := s.users.GetByEmail(ctx, principal.Email)
	return user, mapUserErr(err)
}

// Update overwrites the record's fields and re-hashes its password.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapUserErr(err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user.Username = in.Username
	user.Email = in.Email
	user.Name = in.Name
	if !in.KeepRoles {
		user.Roles = in.Roles
	}
	user.PasswordHash = hash

	if err := s.users.Update(ctx, user); err != nil {
		return nil, mapUserErr(err)
	}
	return user, nil
}

// Delete removes the record.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return mapUserErr(s.users.Delete(ctx, id))
}

// List returns every record.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func mapUserErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrDuplicateEmail
	}
	return err
}
