package http

import (
	"net/url"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/gofiber/fiber/v3"
)

type updateRecordRequest struct {
	Name *string `json:"name"`
	Age  *int32  `json:"age"`
}

var recordMessages = map[int]string{
	fiber.StatusNotFound: "record not found",
	fiber.StatusConflict: "a record with this email already exists",
}

// recordEmail returns the unescaped :email path parameter.
func recordEmail(c fiber.Ctx) string {
	raw := c.Params("email")
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func (s *Server) listRecords(c fiber.Ctx) error {
	recs, err := s.records.List(c.Context())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(recs)
}

func (s *Server) createRecord(c fiber.Ctx) error {
	var rec models.Record
	if err := c.Bind().Body(&rec); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := s.records.Create(c.Context(), rec); err != nil {
		return s.fail(c, err, recordMessages)
	}
	return c.JSON(fiber.Map{"message": "Record added successfully"})
}

func (s *Server) updateRecord(c fiber.Ctx) error {
	var req updateRecordRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	err := s.records.Update(c.Context(), recordEmail(c), models.RecordPatch{Name: req.Name, Age: req.Age})
	if err != nil {
		return s.fail(c, err, recordMessages)
	}
	return c.JSON(fiber.Map{"message": "Record updated successfully"})
}

func (s *Server) deleteRecord(c fiber.Ctx) error {
	if err := s.records.Delete(c.Context(), recordEmail(c)); err != nil {
		return s.fail(c, err, recordMessages)
	}
	return c.JSON(fiber.Map{"message": "Record deleted successfully"})
}
