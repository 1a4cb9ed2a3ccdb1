package models

import "time"

// Todo is a to-do item owned by the user identified by UserEmail.
type Todo struct {
	ID          int64     `json:"id"`
	UserEmail   string    `json:"user_email"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// TodoPatch lists the fields of a partial update. Nil fields keep their
// stored value.
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Apply returns t with the non-nil fields of p applied.
func (p TodoPatch) Apply(t Todo) Todo {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}
