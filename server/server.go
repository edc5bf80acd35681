package server

import (
	"context"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/existflow/taskdeck/internal/logger"
)

// Server is the task API server
type Server struct {
	db   *sqlx.DB
	repo *Repository
	echo *echo.Echo
	log  *logger.Logger
}

// New opens the database named by dsn (a postgres URL or a sqlite path)
// and creates a server over it
func New(dsn string) (*Server, error) {
	db, dialect, err := OpenDB(dsn)
	if err != nil {
		return nil, err
	}

	return NewWithRepository(db, NewRepository(db, dialect)), nil
}

// NewWithRepository creates a server over an already migrated database
func NewWithRepository(db *sqlx.DB, repo *Repository) *Server {
	s := &Server{
		db:   db,
		repo: repo,
		log:  logger.Component("server"),
	}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(s.requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.GET("/health", s.handleHealth)

	api := e.Group("/api")

	api.GET("/tasks", s.handleListTasks)
	api.POST("/tasks", s.handleCreateTask)
	api.PUT("/tasks/:id", s.handleUpdateTask)
	api.DELETE("/tasks/:id", s.handleDeleteTask)

	api.GET("/groups", s.handleListGroups)
	api.POST("/groups", s.handleCreateGroup)

	api.GET("/categories", s.handleListCategories)
	api.POST("/categories", s.handleCreateCategory)
	api.PUT("/categories/:id", s.handleUpdateCategory)
	api.DELETE("/categories/:id", s.handleDeleteCategory)

	s.echo = e
}

// Close closes the database connection
func (s *Server) Close() error {
	return s.db.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	s.log.Info("Server listening", logger.F("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	if err := s.db.PingContext(c.Request().Context()); err != nil {
		return errorJSON(c, http.StatusServiceUnavailable, "database unavailable")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func errorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}
