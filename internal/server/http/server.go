// Package http exposes the REST API over gofiber/fiber. Handlers translate
// between JSON and the service layer; every protected route runs behind
// requireAuth.
package http

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
)

const shutdownTimeout = 5 * time.Second

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) error
	Login(ctx context.Context, email, password string) (string, error)
}

type TodoService interface {
	Create(ctx context.Context, owner, title string, description *string) (*models.Todo, error)
	List(ctx context.Context, owner string) ([]*models.Todo, error)
	Update(ctx context.Context, owner string, id int64, patch models.TodoPatch) (*models.Todo, error)
	Delete(ctx context.Context, owner string, id int64) error
}

type RecordService interface {
	List(ctx context.Context) ([]*models.Record, error)
	Create(ctx context.Context, rec models.Record) error
	Update(ctx context.Context, email string, patch models.RecordPatch) error
	Delete(ctx context.Context, email string) error
}

// Options configures the listener and browser access.
type Options struct {
	Address     string
	CORSOrigins []string
}

type Server struct {
	address string
	app     *fiber.App
	logger  logging.Logger
	tokens  auth.TokenValidator
	users   UserService
	todos   TodoService
	records RecordService
}

func NewServer(opts Options, l logging.Logger, tokens auth.TokenValidator, us UserService, ts TodoService, rs RecordService) *Server {
	s := &Server{
		address: opts.Address,
		logger:  l.With("module", "http_server"),
		tokens:  tokens,
		users:   us,
		todos:   ts,
		records: rs,
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "todokeeper",
		ErrorHandler: s.handleError,
	})

	s.app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	s.app.Use(s.logRequests)
	s.app.Use(recoverer.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CORSOrigins,
		AllowMethods: []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete},
		AllowHeaders: []string{fiber.HeaderAuthorization, fiber.HeaderAccept, fiber.HeaderContentType},
		MaxAge:       3600,
	}))

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Post("/register", s.register)
	s.app.Post("/login", s.login)

	s.app.Get("/user_dashboard", s.requireAuth, s.dashboard)

	todos := s.app.Group("/todos", s.requireAuth)
	todos.Post("/", s.createTodo)
	todos.Get("/", s.listTodos)
	todos.Put("/:id", s.updateTodo)
	todos.Delete("/:id", s.deleteTodo)

	records := s.app.Group("/records", s.requireAuth)
	records.Get("/", s.listRecords)
	records.Post("/", s.createRecord)
	records.Put("/:email", s.updateRecord)
	records.Delete("/:email", s.deleteRecord)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled or ln fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", ln.Addr().String())

	err := s.app.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true})
	cancel()
	<-done

	if err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}
