// Package mockapi serves the employee REST API over a storage backend for
// local development and tests.
package mockapi

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/UnknownOlympus/staffdesk/internal/metrics"
	"github.com/UnknownOlympus/staffdesk/internal/models"
)

const shutdownTimeout = 5 * time.Second

// Backend stores the records served by the mock API.
type Backend interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	CreateEmployee(ctx context.Context, fields models.EmployeeFields) (models.Employee, error)
	UpdateEmployee(ctx context.Context, identifier int, fields models.EmployeeFields) (models.Employee, error)
	DeleteEmployee(ctx context.Context, identifier int) error
}

// Server is the Fiber app serving the employee API over a Backend.
type Server struct {
	app     *fiber.App
	backend Backend
	log     *slog.Logger
	metrics *metrics.Metrics
}

// New builds the fiber app. allowOrigins is a comma-separated CORS list.
func New(log *slog.Logger, backend Backend, appMetrics *metrics.Metrics, allowOrigins string) *Server {
	srv := &Server{
		backend: backend,
		log:     log.With(slog.String("division", "mockapi")),
		metrics: appMetrics,
	}

	srv.app = fiber.New(fiber.Config{
		AppName:               "staffdesk mock api",
		DisableStartupMessage: true,
		ErrorHandler:          srv.handleError,
	})

	srv.app.Use(srv.observe)
	srv.app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	srv.registerRoutes()

	return srv
}

// App exposes the fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) registerRoutes() {
	s.app.Get("/", s.index)
	s.app.Get("/users", s.listUsers)
	s.app.Get("/employees", s.listEmployees)
	s.app.Post("/employees", s.createEmployee)
	s.app.Put("/employees/:id", s.updateEmployee)
	s.app.Delete("/employees/:id", s.deleteEmployee)
}

// Listen serves on port until ctx is cancelled.
func (s *Server) Listen(ctx context.Context, port int) error {
	go func() {
		<-ctx.Done()
		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			s.log.Error("Failed to shutdown mock api", "error", err)
		}
	}()

	s.log.InfoContext(ctx, "Starting mock api", "port", port)
	if err := s.app.Listen(":" + strconv.Itoa(port)); err != nil {
		return err //nolint:wrapcheck // listener error is already descriptive
	}
	s.log.InfoContext(ctx, "Mock api stopped")

	return nil
}

// observe counts every request by method, matched route and final status.
func (s *Server) observe(c *fiber.Ctx) error {
	err := c.Next()
	if err != nil {
		if hErr := c.App().ErrorHandler(c, err); hErr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	s.metrics.MockAPIRequests.WithLabelValues(
		c.Method(),
		c.Route().Path,
		strconv.Itoa(c.Response().StatusCode()),
	).Inc()

	return nil
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var fErr *fiber.Error
	if errors.As(err, &fErr) {
		return c.Status(fErr.Code).JSON(fiber.Map{"message": fErr.Message})
	}

	s.log.ErrorContext(c.UserContext(), "Request failed",
		"method", c.Method(), "path", c.Path(), "error", err)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal Server Error"})
}
