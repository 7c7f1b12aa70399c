package httpapi

import (
	"errors"
	"net/http"

	"github.com/Berkcanaskin/stellar/internal/common"
	"github.com/labstack/echo/v4"
)

// writeError maps service errors onto the error taxonomy: malformed input
// and duplicates are 400, missing or bad credentials 401, unknown entities
// 404, and ledger failures 500 with the underlying message passed through.
func (s *Server) writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorInvalidSecret),
		errors.Is(err, common.ErrorInvalidDestination),
		errors.Is(err, common.ErrorInvalidAmount),
		errors.Is(err, common.ErrorAlreadyExists):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
	}

	return c.JSON(status, map[string]string{"error": err.Error()})
}
