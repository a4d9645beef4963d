package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "herohome/internal/errors"
	"herohome/internal/service"
)

// UserHandler handles registration and role endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a user handler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterResponse is returned instead of an insert result when the email is
// already registered.
type RegisterResponse struct {
	Message    string      `json:"message"`
	InsertedID interface{} `json:"insertedId"`
}

// RoleResponse carries a user's role.
type RoleResponse struct {
	Role string `json:"role"`
}

// SetRoleRequest is the body of a role change.
type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// Register godoc
// @Summary Register a user on first login
// @Tags users
// @Accept json
// @Produce json
// @Param user body object true "User document with at least an email"
// @Success 200 {object} model.InsertResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	doc, err := bindDocument(c)
	if err != nil {
		return err
	}

	result, err := h.svc.Register(c.Request().Context(), doc)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			return c.JSON(http.StatusOK, RegisterResponse{Message: "User already exists"})
		}
		return respondError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetRole godoc
// @Summary Get a user's role
// @Description Unknown emails report the default role.
// @Tags users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} RoleResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/role/{email} [get]
func (h *UserHandler) GetRole(c echo.Context) error {
	role, err := h.svc.RoleOf(c.Request().Context(), c.Param("email"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, RoleResponse{Role: role})
}

// ListUsers godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /all-users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// SetRole godoc
// @Summary Change a user's role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ObjectID"
// @Param request body SetRoleRequest true "New role"
// @Success 200 {object} model.UpdateResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/admin/{id} [patch]
func (h *UserHandler) SetRole(c echo.Context) error {
	var req SetRoleRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return invalidBody()
	}

	if err := c.Validate(&req); err != nil {
		return respondError(apperrors.ErrInvalidRole)
	}

	result, err := h.svc.SetRole(c.Request().Context(), c.Param("id"), req.Role)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, result)
}
