package server

import (
	"context"
	"time"

	"timely/internal/app"
	"timely/internal/config"
	"timely/internal/handlers"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Server represents the application server
type Server struct {
	echo   *echo.Echo
	db     *sqlx.DB
	driver string
	app    *app.App
	config *config.Config
	logger zerolog.Logger
}

// New creates a new server instance. db may be nil when running on in-memory storage.
func New(cfg *config.Config, db *sqlx.DB, driver string, application *app.App, logger zerolog.Logger) *Server {
	return &Server{
		config: cfg,
		db:     db,
		driver: driver,
		app:    application,
		logger: logger,
	}
}

// zerologMiddleware creates a zerolog-based logging middleware for Echo
func (s *Server) zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()

			s.logger.Info().
				Str("method", req.Method).
				Str("uri", req.RequestURI).
				Str("remote_ip", c.RealIP()).
				Int("status", res.Status).
				Int64("latency_ms", time.Since(start).Milliseconds()).
				Str("user_agent", req.UserAgent()).
				Msg("HTTP request")

			return err
		}
	}
}

// Initialize sets up the Echo framework with middleware and routes
func (s *Server) Initialize() {
	s.echo = echo.New()

	// Middleware
	s.echo.Use(s.zerologMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())

	// Hide Echo banner
	s.echo.HideBanner = true

	// Setup routes
	s.setupRoutes()
}

// setupRoutes configures all the application routes
func (s *Server) setupRoutes() {
	a := s.app
	log := s.logger

	if s.config.EnableSwagger {
		s.echo.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// Health endpoints (keep at root level for monitoring)
	s.echo.GET("/healthz", handlers.HealthHandler(s.config.Version))
	s.echo.GET("/healthz/db", handlers.DBHealthHandler(s.db, s.driver))

	api := s.echo.Group("/api")
	api.GET("/", handlers.RootHandler(s.config.Version))

	clients := api.Group("/clients/:clientId")
	clients.GET("/threads", handlers.ListThreadsHandler(a.Mailbox, log))
	clients.GET("/threads/counts", handlers.ThreadCountsHandler(a.Mailbox, log))
	clients.GET("/threads/:threadId", handlers.GetThreadHandler(a.Mailbox, log))
	clients.POST("/threads/:threadId/read", handlers.MarkThreadReadHandler(a.Mailbox, log))
	clients.POST("/messages", handlers.SendMessageHandler(a.Mailbox, log))
	clients.PATCH("/messages/:messageId", handlers.UpdateMessageHandler(a.Mailbox, log))
	clients.DELETE("/messages/:messageId", handlers.DeleteMessageHandler(a.Mailbox, log))
	clients.DELETE("/trash", handlers.EmptyTrashHandler(a.Mailbox, log))

	clients.GET("/timeline", handlers.TimelineHandler(a.Resolver, a.Aggregator, a.Policy, a.TimelineLogger))

	clients.GET("/requests", handlers.ListRequestsHandler(a.Documents, log))
	clients.GET("/requests/summary", handlers.RequestSummaryHandler(a.Documents, log))
	api.POST("/requests/:requestId/fulfill", handlers.FulfillRequestHandler(a.Documents, log))

	clients.GET("/project-state", handlers.GetProjectStateHandler(a.ProjectStates, log))
	clients.PATCH("/project-state/:projectId", handlers.UpdateProjectStateHandler(a.ProjectStates, log))

	api.GET("/admin/notifications", handlers.ListNotificationsHandler(a.Notifications, log))
	api.GET("/admin/analytics", handlers.AnalyticsHandler(a.Analytics, log))
}

// Handler exposes the router, used by tests
func (s *Server) Handler() *echo.Echo {
	return s.echo
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().Str("port", s.config.Port).Msg("Server starting")
	return s.echo.Start(":" + s.config.Port)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
