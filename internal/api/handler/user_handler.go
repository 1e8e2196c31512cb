package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-management-api/internal/core/ports"
)

// UserHandler handles admin user management and the self-profile endpoint.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// updateUserRequest is a field-level patch: absent fields stay untouched.
type updateUserRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1"`
	Role     *string `json:"role"      validate:"omitempty,oneof=admin user"`
	IsActive *bool   `json:"is_active"`
}

// List handles GET /v1/users (admin only).
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]any
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	users, err := h.users.List(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Profile handles GET /v1/users/profile.
//
// @Summary      Get the caller's own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Router       /v1/users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.users.Profile(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Get handles GET /v1/users/:id (admin only).
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]any
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PATCH /v1/users/:id (admin only).
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to patch"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  map[string]any
// @Router       /v1/users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.Update(c.Request().Context(), p, c.Param("id"), ports.UpdateUserInput{
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /v1/users/:id (admin only).
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  map[string]any
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.users.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
