package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"docdigest/internal/http/middleware"
	"docdigest/internal/model"
	"docdigest/internal/stage"
	"docdigest/internal/storage"
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

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INPUT_MISSING", "MODEL_CALL_FAILED")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeFailure maps pipeline and source errors onto the standard payload.
func writeFailure(c *fiber.Ctx, err error) error {
	zerolog.Ctx(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg("request failed")

	switch {
	case errors.Is(err, errInvalidBody):
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", err.Error())
	case errors.Is(err, model.ErrUnsupportedKind):
		return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_KIND", "unsupported file type")
	case errors.Is(err, storage.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "object not found")
	case errors.Is(err, storage.ErrObjectTooLarge):
		return writeError(c, fiber.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "object exceeds upload limit")
	}

	switch stage.KindOf(err) {
	case stage.ErrInputMissing:
		return writeError(c, fiber.StatusBadRequest, "INPUT_MISSING", "no text or document provided")
	case stage.ErrUnsupportedKind:
		return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_KIND", "unsupported file type")
	case stage.ErrModelCall:
		return writeError(c, fiber.StatusBadGateway, "MODEL_CALL_FAILED", "model call failed")
	case stage.ErrRender:
		return writeError(c, fiber.StatusInternalServerError, "RENDER_FAILED", "pdf generation failed")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
