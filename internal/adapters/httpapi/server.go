package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/aeroroute-go/internal/application/common"
	"github.com/andrescamacho/aeroroute-go/internal/infrastructure/config"
)

const shutdownTimeout = 10 * time.Second

// Server exposes route planning over HTTP
type Server struct {
	cfg      config.ServerConfig
	mediator common.Mediator
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  string
	router   *gin.Engine
}

// ServerOption configures optional endpoints
type ServerOption func(*Server)

// WithMetrics serves the registry at path
func WithMetrics(registry *prometheus.Registry, path string) ServerOption {
	return func(s *Server) {
		s.registry = registry
		s.metrics = path
	}
}

// NewServer builds the router. The logger is attached to every request context.
func NewServer(cfg config.ServerConfig, mediator common.Mediator, logger *slog.Logger, opts ...ServerOption) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	s := &Server{cfg: cfg, mediator: mediator, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the http.Handler, used by tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(setupCORS(s.cfg.CORSOrigins))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	if s.registry != nil {
		path := s.metrics
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	}

	h := &handlers{mediator: s.mediator}
	v1 := r.Group("/v1")
	v1.POST("/route-plans", h.computeRoutePlan)
	v1.GET("/airports/:icao", h.getAirport)
	v1.GET("/aircraft/:id", h.getAircraft)

	return r
}

func setupCORS(origins []string) gin.HandlerFunc {
	if len(origins) == 1 && origins[0] == "*" {
		return cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
			ExposeHeaders:   []string{"Content-Length", requestIDHeader},
			MaxAge:          12 * time.Hour,
		})
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders:    []string{"Content-Length", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

const requestIDHeader = "X-Request-ID"

// requestLogger tags each request with an id, puts the logger into its
// context and logs the outcome. A caller supplied X-Request-ID is kept.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		ctx := common.WithRequestID(common.WithLogger(c.Request.Context(), s.logger), id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		s.logger.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", id,
		)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port)),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
