package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"crowdship/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "Something went wrong, please try again later"

type errorResponse struct {
	Status  string `json:"status" example:"fail"`
	Message string `json:"message" example:"value is invalid: rewardPrice"`
} // @name ErrorResponse

// statusOf maps an error returned by a handler to its HTTP status code.
func statusOf(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrRuleViolation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func messageOf(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return internalErrorMessage
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return fmt.Sprint(he.Message)
	}
	if errors.Is(err, errs.ErrVersionIsInvalid) {
		return "the resource was changed by another request, please retry"
	}
	return strings.ReplaceAll(err.Error(), "\n", "; ")
}

// NewErrorHandler renders every error as {"status","message"}: "fail" for client
// errors, "error" for server errors. Server error details are logged, never sent.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := statusOf(err)
		body := errorResponse{Status: "fail", Message: messageOf(err, status)}
		if status >= http.StatusInternalServerError {
			body.Status = "error"
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", writeErr)
		}
	}
}
