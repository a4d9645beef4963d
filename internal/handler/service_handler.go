package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"herohome/internal/service"
)

// ServiceHandler handles the service catalog.
type ServiceHandler struct {
	catalog service.CatalogService
}

// NewServiceHandler creates a catalog handler.
func NewServiceHandler(catalog service.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

// List godoc
// @Summary List services
// @Tags services
// @Produce json
// @Success 200 {array} model.Service
// @Failure 500 {object} errors.ErrorResponse
// @Router /services [get]
func (h *ServiceHandler) List(c echo.Context) error {
	services, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, services)
}

// Get godoc
// @Summary Get a service
// @Tags services
// @Produce json
// @Param id path string true "Service ObjectID"
// @Success 200 {object} model.Service
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /services/{id} [get]
func (h *ServiceHandler) Get(c echo.Context) error {
	svc, err := h.catalog.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, svc)
}

// Latest godoc
// @Summary Latest services
// @Description Six newest services, ties broken by review count then rating.
// @Tags services
// @Produce json
// @Success 200 {array} model.Service
// @Failure 500 {object} errors.ErrorResponse
// @Router /latest-services [get]
func (h *ServiceHandler) Latest(c echo.Context) error {
	services, err := h.catalog.Latest(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, services)
}

// ListByProvider godoc
// @Summary Services of a provider
// @Tags services
// @Produce json
// @Param email path string true "Provider email"
// @Success 200 {array} model.Service
// @Failure 500 {object} errors.ErrorResponse
// @Router /services/user/{email} [get]
func (h *ServiceHandler) ListByProvider(c echo.Context) error {
	services, err := h.catalog.ListByProvider(c.Request().Context(), c.Param("email"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, services)
}

// Create godoc
// @Summary Create a service
// @Tags services
// @Accept json
// @Produce json
// @Param service body object true "Service document"
// @Success 200 {object} model.InsertResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /services [post]
func (h *ServiceHandler) Create(c echo.Context) error {
	doc, err := bindDocument(c)
	if err != nil {
		return err
	}

	result, err := h.catalog.Create(c.Request().Context(), doc)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// Update godoc
// @Summary Update a service
// @Description Sets the given fields. Review aggregates cannot be edited.
// @Tags services
// @Accept json
// @Produce json
// @Param id path string true "Service ObjectID"
// @Param patch body object true "Fields to set"
// @Success 200 {object} model.UpdateResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /services/{id} [patch]
func (h *ServiceHandler) Update(c echo.Context) error {
	patch, err := bindDocument(c)
	if err != nil {
		return err
	}

	result, err := h.catalog.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// Delete godoc
// @Summary Delete a service
// @Tags services
// @Produce json
// @Param id path string true "Service ObjectID"
// @Success 200 {object} model.DeleteResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /services/{id} [delete]
func (h *ServiceHandler) Delete(c echo.Context) error {
	result, err := h.catalog.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, result)
}
