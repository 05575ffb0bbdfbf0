// Package api exposes the analysis engine over HTTP. All analysis
// endpoints require a bearer token issued by the /token endpoint.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/neurolab-analysis-server/internal/auth"
	"github.com/neurolab-analysis-server/internal/cache"
	"github.com/neurolab-analysis-server/internal/config"
	"github.com/neurolab-analysis-server/internal/middleware"
	"github.com/neurolab-analysis-server/internal/repository"
	"github.com/neurolab-analysis-server/internal/service"
)

// Server represents the HTTP server
type Server struct {
	config   *config.Config
	router   *gin.Engine
	server   *http.Server
	log      *logrus.Logger
	auth     *auth.Service
	analysis *service.TestAnalysisService
	imaging  map[string]*service.ImagingAnalysisService
	cache    *cache.ResultCache
	reports  *repository.ReportRepository
}

// Deps carries the services the server routes to. Reports may be nil
// when report persistence is disabled.
type Deps struct {
	Auth     *auth.Service
	Analysis *service.TestAnalysisService
	Imaging  map[string]*service.ImagingAnalysisService
	Cache    *cache.ResultCache
	Reports  *repository.ReportRepository
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, deps Deps, logger *logrus.Logger) *Server {
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.AuditLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(corsMiddleware())
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.Rate, cfg.RateLimit.Burst)
		router.Use(limiter.Middleware())
	}

	server := &Server{
		config:   cfg,
		router:   router,
		log:      logger,
		auth:     deps.Auth,
		analysis: deps.Analysis,
		imaging:  deps.Imaging,
		cache:    deps.Cache,
		reports:  deps.Reports,
	}

	server.setupRoutes()

	return server
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.config.Server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	s.log.WithField("addr", addr).Info("HTTP server listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.POST("/token", s.handleToken)
	s.router.POST("/register", s.handleRegister)

	v1 := s.router.Group("/api/v1")
	v1.Use(s.requireAuth())
	{
		v1.POST("/analyze/test-results", s.handleAnalyzeTestResults)
		v1.POST("/analyze/:modality", s.handleAnalyzeImaging)
		v1.GET("/reports", s.handleListReports)
		v1.GET("/reports/:id", s.handleGetReport)
	}
}

// corsMiddleware adds CORS headers to responses
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization")
		c.Header("Access-Control-Expose-Headers", "Content-Length")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
