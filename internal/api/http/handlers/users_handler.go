package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-service/internal/api/dto"
	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/domain"
	"github.com/spec-kit/auth-service/internal/service"
	apperrors "github.com/spec-kit/auth-service/pkg/util/errorutil"
)

// UsersHandler exposes profile endpoints for authenticated callers.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Me handles GET /api/v1/users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c.UserContext())
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, err := h.users.Current(c.UserContext(), principal)
	if err != nil {
		return mapServiceError(err, true)
	}
	return c.JSON(dto.NewUserResponse(user))
}

// List handles GET /api/v1/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return mapServiceError(err, true)
	}
	return c.JSON(dto.NewUserResponses(users))
}

// Update handles PUT /api/v1/users/update/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	admin, err := authorizeOwner(c, id)
	if err != nil {
		return err
	}

	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.users.Update(c.UserContext(), id, service.UpdateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		Roles:     domain.ParseRoles(req.Roles),
		KeepRoles: !admin,
	})
	if err != nil {
		return mapServiceError(err, true)
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Delete handles DELETE /api/v1/users/delete/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := authorizeOwner(c, id); err != nil {
		return err
	}

	if err := h.users.Delete(c.UserContext(), id); err != nil {
		return mapServiceError(err, true)
	}
	return c.SendStatus(http.StatusNoContent)
}

// authorizeOwner lets a principal act on its own record; admins may act on any.
// It reports whether the principal is an admin.
func authorizeOwner(c *fiber.Ctx, id string) (bool, error) {
	principal, ok := auth.PrincipalFromContext(c.UserContext())
	if !ok || principal.User == nil {
		return false, apperrors.NewUnauthorized("authentication required")
	}
	if principal.User.HasRole(domain.RoleAdmin) {
		return true, nil
	}
	if principal.User.ID != id {
		return false, apperrors.NewForbidden("not allowed to modify this user")
	}
	return false, nil
}
