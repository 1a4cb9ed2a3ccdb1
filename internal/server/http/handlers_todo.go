package http

import (
	"strconv"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/gofiber/fiber/v3"
)

type createTodoRequest struct {
	Title string  `json:"title"`
	Desp  *string `json:"desp"`
}

type updateTodoRequest struct {
	Title      *string `json:"title"`
	Desp       *string `json:"desp"`
	Completion *bool   `json:"completion"`
}

var todoMessages = map[int]string{
	fiber.StatusNotFound: "Todo item not found or does not belong to user",
}

func todoID(c fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}

func (s *Server) createTodo(c fiber.Ctx) error {
	var req createTodoRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	item, err := s.todos.Create(c.Context(), identity(c).Subject, req.Title, req.Desp)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (s *Server) listTodos(c fiber.Ctx) error {
	items, err := s.todos.List(c.Context(), identity(c).Subject)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(items)
}

func (s *Server) updateTodo(c fiber.Ctx) error {
	id, ok := todoID(c)
	if !ok {
		return badRequest(c, "invalid todo id")
	}

	var req updateTodoRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	patch := models.TodoPatch{Title: req.Title, Description: req.Desp, Completed: req.Completion}
	item, err := s.todos.Update(c.Context(), identity(c).Subject, id, patch)
	if err != nil {
		return s.fail(c, err, todoMessages)
	}
	return c.JSON(item)
}

func (s *Server) deleteTodo(c fiber.Ctx) error {
	id, ok := todoID(c)
	if !ok {
		return badRequest(c, "invalid todo id")
	}

	if err := s.todos.Delete(c.Context(), identity(c).Subject, id); err != nil {
		return s.fail(c, err, todoMessages)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
