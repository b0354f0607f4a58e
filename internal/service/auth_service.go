package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/domain"
	"github.com/spec-kit/auth-service/internal/repository"
)

// CredentialVerifier checks an email/password pair. Implementations return
// auth.ErrBadCredentials when the pair does not match.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) error
}

// RegisterInput carries a registration candidate.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Name     string
	Roles    []domain.Role
}

// AuthResult is the outcome of a successful registration or login.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users    repository.UserRepository
	verifier CredentialVerifier
	hasher   auth.PasswordHasher
	tokens   *auth.TokenCodec
}

// AuthDependencies encapsulates collaborators for the auth service.
// Verifier defaults to a PasswordAuthenticator over UserRepo and Hasher.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Hasher   auth.PasswordHasher
	Tokens   *auth.TokenCodec
	Verifier CredentialVerifier
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	verifier := deps.Verifier
	if verifier == nil {
		verifier = auth.NewPasswordAuthenticator(deps.UserRepo, deps.Hasher)
	}
	return &AuthService{
		users:    deps.UserRepo,
		verifier: verifier,
		hasher:   deps.Hasher,
		tokens:   deps.Tokens,
	}
}

// Register creates a credential record and issues a token for it.
//
// Duplicate emails are rejected before any write. Two registrations racing for
// the same email both pass that check; the store's unique constraint rejects
// the loser, which is reported as ErrDuplicateEmail as well.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Roles:        in.Roles,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return s.issue(user)
}

// Authenticate verifies credentials and issues a token for the account.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := s.verifier.Verify(ctx, email, password); err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// The record can disappear between verification and this read.
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, exp, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}
