package handler

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"querydemo/internal/errs"
	"querydemo/internal/http/middleware"
	"querydemo/internal/query"
	"querydemo/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if s, ok := c.Locals(middleware.RequestIDLocalKey).(string); ok {
		return s
	}
	return ""
}

// writeError writes a standardized JSON error response. message must be
// safe to show to clients.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps an error returned by a service to a response.
func writeServiceError(c *fiber.Ctx, err error) error {
	var de *errs.DeserializeError
	switch {
	case errors.As(err, &de):
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", de.Error())
	case errors.Is(err, query.ErrEmptyBatch):
		return writeError(c, fiber.StatusBadRequest, "EMPTY_BATCH", "at least one row is required")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id")
	case errors.Is(err, service.ErrTitleRequired):
		return writeError(c, fiber.StatusBadRequest, "TITLE_REQUIRED", "title is required")
	case errors.Is(err, service.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
	case errs.HasCode(err, errs.CodeDuplicate):
		return writeError(c, fiber.StatusConflict, "CONFLICT", "resource already exists")
	case errs.HasCode(err, errs.CodeNotNull), errs.HasCode(err, errs.CodeNoDefault):
		return writeError(c, fiber.StatusUnprocessableEntity, "CONSTRAINT_VIOLATION", "a required column is missing")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
