// Package client talks to the todokeeper server: the REST API for accounts
// and todos, and the gRPC endpoint for health probes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
)

// Todo mirrors the server's todo item.
type Todo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// APIClient is a REST client for a single user session. The bearer token is
// kept in memory only.
type APIClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *APIClient) LoggedIn() bool { return c.token != "" }

// Token returns the current bearer token, or "" before login.
func (c *APIClient) Token() string { return c.token }

// Logout forgets the token.
func (c *APIClient) Logout() { c.token = "" }

func (c *APIClient) Register(ctx context.Context, name, email string, password []byte) error {
	body := map[string]string{"name": name, "email": email, "password": string(password)}
	return c.do(ctx, http.MethodPost, "/register", false, body, nil)
}

// Login authenticates and keeps the returned token for subsequent calls.
func (c *APIClient) Login(ctx context.Context, email string, password []byte) error {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": email, "password": string(password)}
	if err := c.do(ctx, http.MethodPost, "/login", false, body, &out); err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

func (c *APIClient) Dashboard(ctx context.Context) (string, error) {
	var out bytes.Buffer
	if err := c.do(ctx, http.MethodGet, "/user_dashboard", true, nil, &out); err != nil {
		return "", err
	}
	return out.String(), nil
}

func (c *APIClient) ListTodos(ctx context.Context) ([]Todo, error) {
	var out []Todo
	if err := c.do(ctx, http.MethodGet, "/todos", true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) AddTodo(ctx context.Context, title string, description *string) (*Todo, error) {
	var out Todo
	body := map[string]any{"title": title}
	if description != nil {
		body["desp"] = *description
	}
	if err := c.do(ctx, http.MethodPost, "/todos", true, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) CompleteTodo(ctx context.Context, id int64) (*Todo, error) {
	var out Todo
	body := map[string]any{"completion": true}
	if err := c.do(ctx, http.MethodPut, "/todos/"+strconv.FormatInt(id, 10), true, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) DeleteTodo(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+strconv.FormatInt(id, 10), true, nil, nil)
}

// do sends the request and decodes a 2xx answer into out. out may be nil,
// a *bytes.Buffer for plain text, or anything encoding/json accepts.
func (c *APIClient) do(ctx context.Context, method, path string, auth bool, in, out any) error {
	if auth && c.token == "" {
		return ErrNotLoggedIn
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", common.BearerScheme+" "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil {
			apiErr.Message = e.Error
		}
		if resp.StatusCode == http.StatusUnauthorized && auth {
			c.token = ""
		}
		return apiErr
	}

	switch o := out.(type) {
	case nil:
		return nil
	case *bytes.Buffer:
		_, err := o.Write(data)
		return err
	default:
		if len(data) == 0 {
			return nil
		}
		return json.Unmarshal(data, out)
	}
}
