package http

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

type localsKey string

const identityKey localsKey = "identity"

// requireAuth admits the request only with a valid bearer token and stores
// the caller's identity for the handler. Rejections are answered here; the
// handler never runs.
func (s *Server) requireAuth(c fiber.Ctx) error {
	id, err := auth.ExtractIdentity(c.Get(fiber.HeaderAuthorization), s.tokens)
	if err != nil {
		s.logger.Warn(c.Context(), "request rejected",
			"request_id", requestid.FromContext(c),
			"path", c.Path(),
			"reason", err.Error(),
		)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": rejectionMessage(err)})
	}

	c.Locals(identityKey, id)
	c.SetContext(logging.ContextWith(auth.WithIdentity(c.Context(), id), "user", id.Subject))
	return c.Next()
}

func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrMissingCredential):
		return "Missing Authorization header"
	case errors.Is(err, auth.ErrMalformedCredential):
		return "Invalid token format"
	default:
		return "Invalid or expired token"
	}
}

// identity returns the caller set by requireAuth.
func identity(c fiber.Ctx) *auth.Identity {
	id, _ := c.Locals(identityKey).(*auth.Identity)
	return id
}

// logRequests writes one line per request after it has been handled.
func (s *Server) logRequests(c fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		status = fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
	}

	s.logger.Info(c.Context(), "request",
		"request_id", requestid.FromContext(c),
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"latency", time.Since(start).String(),
	)
	return err
}
