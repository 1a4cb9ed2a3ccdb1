package http

import (
	"errors"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

// mapErrorToStatus maps service errors to HTTP status codes.
func mapErrorToStatus(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, common.ErrorValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// publicMessage is the only error text a client ever sees. Store errors,
// hashes and token internals are never part of it.
func publicMessage(status int, err error) string {
	switch status {
	case fiber.StatusBadRequest:
		return err.Error()
	case fiber.StatusUnauthorized:
		return "Invalid email or password"
	case fiber.StatusNotFound:
		return "not found"
	case fiber.StatusConflict:
		return "already exists"
	default:
		return "internal server error"
	}
}

// fail answers with the status and message for err. Server-side failures
// are logged with the full error.
func (s *Server) fail(c fiber.Ctx, err error, overrides ...map[int]string) error {
	status := mapErrorToStatus(err)
	msg := publicMessage(status, err)
	for _, o := range overrides {
		if m, ok := o[status]; ok {
			msg = m
		}
	}

	if status >= fiber.StatusInternalServerError {
		s.logger.Error(c.Context(), "request failed",
			"request_id", requestid.FromContext(c),
			"path", c.Path(),
			"error", err,
		)
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// handleError is the fiber ErrorHandler: unmatched routes, recovered panics
// and errors returned by middleware end up here.
func (s *Server) handleError(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	s.logger.Error(c.Context(), "unhandled error",
		"request_id", requestid.FromContext(c),
		"path", c.Path(),
		"error", err,
	)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
