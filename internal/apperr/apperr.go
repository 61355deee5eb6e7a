package apperr

import (
	"errors"
	"net/http"

	"github.com/githuax/zeduno-sub008/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Sentinel errors for the service layer. Handlers map them onto HTTP status
// codes; anything not wrapping one of these is treated as internal.
var (
	ErrValidation   = errors.New("validation")   // 400
	ErrUnauthorized = errors.New("unauthorized") // 401
	ErrForbidden    = errors.New("forbidden")    // 403
	ErrNotFound     = errors.New("not found")    // 404
	ErrConflict     = errors.New("conflict")     // 409
)

// Response is the uniform error body returned to clients.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// DetailedError carries structured details alongside a sentinel error, e.g.
// the order numbers blocking a table release.
type DetailedError struct {
	Err     error
	Message string
	Details interface{}
}

func (e *DetailedError) Error() string {
	return e.Message
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// WithDetails wraps a sentinel error with a message and structured details.
func WithDetails(sentinel error, message string, details interface{}) error {
	return &DetailedError{Err: sentinel, Message: message, Details: details}
}

// StatusCode returns the HTTP status code for the given error.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond turns a service error into the uniform JSON error response.
// Internal errors are logged with operation context and surfaced to the
// caller with a generic message so no internal detail leaks.
func Respond(c echo.Context, operation string, err error) error {
	status := StatusCode(err)

	if status == http.StatusInternalServerError {
		logger.FromEcho(c).Error("internal error",
			zap.String("operation", operation),
			zap.Error(err),
		)
		return c.JSON(status, Response{Success: false, Message: "internal server error"})
	}

	resp := Response{Success: false, Message: err.Error()}
	var detailed *DetailedError
	if errors.As(err, &detailed) {
		resp.Message = detailed.Message
		resp.Details = detailed.Details
	}
	return c.JSON(status, resp)
}
