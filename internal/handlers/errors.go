package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/anonto42/nano-blog/backend/internal/apperrors"
	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler writes every error as {"error": "<message>"}.
// Errors outside the taxonomy are logged and hidden behind a generic 500.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"

	var appErr *apperrors.Error
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		status, message = appErr.HTTPStatus(), appErr.Message
	case errors.As(err, &httpErr):
		status = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(status)
		}
	default:
		log.Printf("Unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, echo.Map{"error": message})
	}
	if err != nil {
		log.Printf("Failed to write error response: %v", err)
	}
}
