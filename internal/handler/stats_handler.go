package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"herohome/internal/service"
)

// StatsHandler serves the dashboard summaries.
type StatsHandler struct {
	stats service.StatsService
}

// NewStatsHandler creates a stats handler.
func NewStatsHandler(stats service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Provider godoc
// @Summary Provider dashboard
// @Tags stats
// @Produce json
// @Param email path string true "Provider email"
// @Success 200 {object} model.ProviderStats
// @Failure 500 {object} errors.ErrorResponse
// @Router /provider-stats/{email} [get]
func (h *StatsHandler) Provider(c echo.Context) error {
	stats, err := h.stats.Provider(c.Request().Context(), c.Param("email"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// Admin godoc
// @Summary Marketplace dashboard
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AdminStats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin-stats [get]
func (h *StatsHandler) Admin(c echo.Context) error {
	stats, err := h.stats.Admin(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// User godoc
// @Summary Customer dashboard
// @Tags stats
// @Produce json
// @Param email path string true "Customer email"
// @Success 200 {object} model.UserStats
// @Failure 500 {object} errors.ErrorResponse
// @Router /user-stats/{email} [get]
func (h *StatsHandler) User(c echo.Context) error {
	stats, err := h.stats.User(c.Request().Context(), c.Param("email"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
