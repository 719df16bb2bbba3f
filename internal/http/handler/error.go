package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"menucup/internal/auth"
	"menucup/internal/http/middleware"
	"menucup/internal/logging"
	"menucup/internal/menubuilder"
	"menucup/internal/service"
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

// writeError writes a standardized JSON error response. message must be safe to show to clients.
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

// classify maps a service or builder error onto a status, code and client message.
// Unknown errors become a 500 without internal details.
func classify(err error) (int, errorEnvelope) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrIDRequired),
		errors.Is(err, service.ErrReaderNil),
		errors.Is(err, menubuilder.ErrBadDirection),
		errors.Is(err, menubuilder.ErrNoRestaurant):
		return fiber.StatusBadRequest, errorEnvelope{Code: "VALIDATION_ERROR", Message: err.Error()}
	case errors.Is(err, auth.ErrNoToken), errors.Is(err, auth.ErrInvalidToken):
		return fiber.StatusUnauthorized, errorEnvelope{Code: "UNAUTHORIZED", Message: "authentication required"}
	case errors.Is(err, service.ErrForbidden):
		return fiber.StatusForbidden, errorEnvelope{Code: "FORBIDDEN", Message: "you cannot change this restaurant"}
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, menubuilder.ErrUnknownRestaurant),
		errors.Is(err, menubuilder.ErrUnknownCategory),
		errors.Is(err, menubuilder.ErrUnknownItem):
		return fiber.StatusNotFound, errorEnvelope{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, service.ErrConflict):
		return fiber.StatusConflict, errorEnvelope{Code: "CONFLICT", Message: err.Error()}
	default:
		return fiber.StatusInternalServerError, errorEnvelope{Code: "INTERNAL_ERROR", Message: "internal server error"}
	}
}

// writeServiceError writes the envelope for err and logs it when it is a backend failure.
func writeServiceError(c *fiber.Ctx, log *logging.Logger, err error) error {
	status, env := classify(err)
	if status == fiber.StatusInternalServerError && log != nil {
		log.Error("request failed", err, logging.Fields{
			"request_id": middleware.RequestIDFrom(c),
			"method":     c.Method(),
			"path":       c.Path(),
		})
	}
	return writeError(c, status, env.Code, env.Message)
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
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "authentication required")
		case fiber.StatusForbidden:
			return writeError(c, status, "FORBIDDEN", "forbidden")
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
