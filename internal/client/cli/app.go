package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/client/client"
	"github.com/dmitrijs2005/todokeeper/internal/client/config"
)

type apiClient interface {
	LoggedIn() bool
	Logout()
	Register(ctx context.Context, name, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Dashboard(ctx context.Context) (string, error)
	ListTodos(ctx context.Context) ([]client.Todo, error)
	AddTodo(ctx context.Context, title string, description *string) (*client.Todo, error)
	CompleteTodo(ctx context.Context, id int64) (*client.Todo, error)
	DeleteTodo(ctx context.Context, id int64) error
}

type healthChecker interface {
	Check(ctx context.Context, service string) (string, error)
}

type App struct {
	config *config.Config
	api    apiClient
	health healthChecker
	reader *bufio.Reader
	out    io.Writer
	email  string
	close  func() error
}

func NewApp(c *config.Config) (*App, error) {
	api := client.NewAPIClient(c.ServerURL, c.RequestTimeout)

	hc, err := client.NewHealthClient(c.GRPCAddr, api.Token)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		api:    api,
		health: hc,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		close:  hc.Close,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return a.email
	}
	return "guest"
}

func (a *App) timeout() time.Duration {
	if a.config != nil && a.config.RequestTimeout > 0 {
		return a.config.RequestTimeout
	}
	return 10 * time.Second
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	if a.close != nil {
		defer func() { _ = a.close() }()
	}
	runREPL(ctx, a, a.status, a.reader, a.out)
}
