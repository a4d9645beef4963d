package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"herohome/internal/service"
)

// ReviewHandler handles service reviews.
type ReviewHandler struct {
	reviews service.ReviewService
}

// NewReviewHandler creates a review handler.
func NewReviewHandler(reviews service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// AddReview godoc
// @Summary Review a service
// @Description Appends the review and recomputes the service's average rating and review count.
// @Tags reviews
// @Accept json
// @Produce json
// @Param serviceId path string true "Service ObjectID"
// @Param review body object true "Review with rating and optional date"
// @Success 200 {object} model.ReviewResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /services/{serviceId}/review [post]
func (h *ReviewHandler) AddReview(c echo.Context) error {
	payload, err := bindDocument(c)
	if err != nil {
		return err
	}

	result, err := h.reviews.AddReview(c.Request().Context(), c.Param("serviceId"), payload)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, result)
}
