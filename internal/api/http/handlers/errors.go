package handlers

import (
	"errors"
	"net/http"

	"github.com/spec-kit/auth-service/internal/api/dto"
	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/service"
	apperrors "github.com/spec-kit/auth-service/pkg/util/errorutil"
)

// mapServiceError translates service sentinels into HTTP-facing errors.
// notFound decides whether a missing record is the caller's problem (404) or
// a consistency fault (500).
func mapServiceError(err error, notFound bool) error {
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		return apperrors.NewBadRequest("EMAIL_TAKEN", "email is already taken")
	case errors.Is(err, service.ErrInvalidCredentials):
		return apperrors.NewDomainError("INVALID_CREDENTIALS", "invalid email or password", http.StatusUnauthorized, nil)
	case errors.Is(err, auth.ErrPasswordTooLong):
		return apperrors.NewValidationError(err.Error(), map[string]any{
			"fields": []dto.FieldError{{Field: "password", Message: err.Error()}},
		})
	case errors.Is(err, service.ErrUserNotFound) && notFound:
		return apperrors.NewNotFound("user", nil)
	}
	return apperrors.NewInternalError(err)
}
