package http

import (
	"errors"
	"log/slog"
	"net/http"

	"procurement/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error codes exposed in the uniform error envelope.
const (
	CodeValidationError      = "VALIDATION_ERROR"
	CodeNotFound             = "NOT_FOUND"
	CodeDuplicateExternalRef = "DUPLICATE_EXTERNAL_REFERENCE"
	CodePreconditionFailed   = "PRECONDITION_FAILED"
	CodeForbidden            = "FORBIDDEN"
	CodeInternal             = "INTERNAL"
)

// respondError translates domain errors into the HTTP error envelope.
// Internal failures are logged with their cause and returned opaque.
func (s *Server) respondError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    CodeDuplicateExternalRef,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    CodeNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrPreconditionFailed):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    CodePreconditionFailed,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrForbidden):
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    CodeForbidden,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeValidationError,
			Message: err.Error(),
		})
	default:
		s.logger.Error("request failed",
			slog.String("method", ctx.Request().Method),
			slog.String("path", ctx.Path()),
			slog.String("error", err.Error()),
		)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    CodeInternal,
			Message: "internal error",
		})
	}
}

// badRequest reports a malformed payload that never reached a command.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    CodeValidationError,
		Message: message,
	})
}
