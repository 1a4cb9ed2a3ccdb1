package http

import (
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/server/services"
	"github.com/gofiber/fiber/v3"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var registerMessages = map[int]string{
	fiber.StatusConflict: "An account with this email already exists",
}

func (s *Server) register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	err := s.users.Register(c.Context(), services.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		return s.fail(c, err, registerMessages)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "User Registration Completed"})
}

func (s *Server) login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	token, err := s.users.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Login successful", "token": token})
}

func (s *Server) dashboard(c fiber.Ctx) error {
	return c.SendString(fmt.Sprintf("Welcome %s .This is your dashboard", identity(c).Subject))
}
