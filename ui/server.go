package ui

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"time"

	"leanfunnel/app"
	"leanfunnel/internal"
	"leanfunnel/ui/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Server represents the web server for the conversion dashboard
type Server struct {
	router    *gin.Engine
	service   *app.DashboardService
	templates *template.Template
	assets    fs.FS
	title     string
	logger    *internal.Logger
}

// NewServer creates a new web server instance serving the given assets
func NewServer(assets fs.FS) *Server {
	return &Server{
		router: gin.New(),
		assets: assets,
		title:  "Lean System Conversion Dashboard",
		logger: internal.DefaultLogger.With("UI"),
	}
}

// Initialize sets up the server with dependencies
func (s *Server) Initialize(service *app.DashboardService, title string, logger *internal.Logger) error {
	if service == nil {
		return fmt.Errorf("dashboard service is required")
	}
	s.service = service
	if title != "" {
		s.title = title
	}
	if logger != nil {
		s.logger = logger.With("UI")
	}

	templates, err := parseTemplates(s.assets)
	if err != nil {
		return err
	}
	s.templates = templates

	s.setupMiddleware()
	s.setupRoutes()
	return nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestLogger(s.logger))

	staticFS, err := fs.Sub(s.assets, "static")
	if err != nil {
		s.logger.Warn("static assets unavailable: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	api.GET("/metrics", s.handleMetrics)
	api.GET("/table", s.handleTable)
	api.GET("/history", s.handleHistory)
}

// Handler exposes the router, used by http.Server and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve runs the web server until ctx is cancelled, then shuts it down
func (s *Server) Serve(ctx context.Context, addr string) error {
	s.logger.Info("Starting dashboard on http://%s", addr)

	eg, egctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down dashboard...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
