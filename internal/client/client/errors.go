package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable reports that the server could not be reached.
	ErrUnavailable = errors.New("server unavailable")
	// ErrNotLoggedIn is returned by calls that need a token before login.
	ErrNotLoggedIn = errors.New("not logged in")
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}
