package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"herohome/internal/service"
)

// BookingHandler handles bookings.
type BookingHandler struct {
	bookings service.BookingService
}

// NewBookingHandler creates a booking handler.
func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// List godoc
// @Summary List bookings
// @Tags bookings
// @Produce json
// @Success 200 {array} model.Booking
// @Failure 500 {object} errors.ErrorResponse
// @Router /bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	bookings, err := h.bookings.List(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, bookings)
}

// Create godoc
// @Summary Book a service
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body object true "Booking document with a serviceId"
// @Success 201 {object} model.InsertResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	doc, err := bindDocument(c)
	if err != nil {
		return err
	}

	result, err := h.bookings.Create(c.Request().Context(), doc)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, result)
}

// Delete godoc
// @Summary Cancel a booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ObjectID"
// @Success 200 {object} model.DeleteResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	result, err := h.bookings.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, result)
}
