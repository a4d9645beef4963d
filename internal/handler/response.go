package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"herohome/internal/auth"
	"herohome/internal/errors"
	"herohome/internal/model"
)

// ClaimsContextKey is where the JWT middleware stores the parsed claims.
const ClaimsContextKey = "user"

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondError turns a service error into an Echo error carrying an
// errors.ErrorResponse body. Server errors keep the cause as internal error
// so it is logged but never sent.
func respondError(err error) error {
	mapped := errors.MapErrorToHTTP(err)
	he := echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	if mapped.StatusCode >= http.StatusInternalServerError {
		return he.SetInternal(err)
	}
	return he
}

func invalidBody() error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "invalid request body",
		Code:  "INVALID_REQUEST",
	})
}

// bindDocument decodes a free-form JSON body. Path and query parameters are
// deliberately not merged into the document.
func bindDocument(c echo.Context) (model.Fields, error) {
	doc := model.Fields{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &doc); err != nil {
		return nil, invalidBody()
	}
	return doc, nil
}

func claimsFrom(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}
