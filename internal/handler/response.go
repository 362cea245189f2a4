package handler

import (
	"github.com/labstack/echo/v4"

	apperrors "secalert/internal/errors"
)

// Response is the envelope returned by every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// respondError maps a domain error onto the HTTP status table and wraps it
// in the envelope.
func respondError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, Response{Success: false, Message: httpErr.Message})
}
