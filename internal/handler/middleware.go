package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "herohome/internal/errors"
	"herohome/internal/service"
)

// RequireRole only lets through callers whose stored role equals role. The
// role is resolved on every request so a demotion applies once the cached
// role expires or is dropped.
func RequireRole(users service.UserService, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := claimsFrom(c)
			if !ok {
				return unauthorized(service.ErrInvalidAccessToken, "INVALID_TOKEN")
			}

			current, err := users.RoleOf(c.Request().Context(), claims.Email)
			if err != nil {
				return respondError(err)
			}
			if current != role {
				return respondError(apperrors.ErrForbidden)
			}
			return next(c)
		}
	}
}

// Root godoc
// @Summary Liveness banner
// @Tags health
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func Root(c echo.Context) error {
	return c.String(http.StatusOK, "Hero Home Server Running")
}

// Healthz godoc
// @Summary Health check
// @Tags health
// @Produce plain
// @Success 200 {string} string
// @Router /healthz [get]
func Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
