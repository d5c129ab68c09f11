// Package http exposes the station telemetry API along with health,
// readiness, and metrics endpoints.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/buoy-telemetry-service/internal/config"
	"github.com/couchcryptid/buoy-telemetry-service/internal/domain"
)

// CurrentProvider serves the newest reading per known station.
type CurrentProvider interface {
	CurrentReadings(ctx context.Context) ([]domain.StationSnapshot, error)
	CheckReadiness() error
}

// HistoryProvider serves aggregated daily highs for one station.
type HistoryProvider interface {
	StationHistory(ctx context.Context, stationID string) ([]domain.DailyHigh, error)
}

// Server exposes the telemetry API over HTTP.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the router and wraps it in an http.Server with sane
// timeouts. CORS origins come from configuration; an empty list allows all.
func NewServer(cfg *config.Config, current CurrentProvider, history HistoryProvider, registry domain.Registry, clock clockwork.Clock, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	h := newHandler(current, history, registry, clock, logger)

	api := router.Group("/api")
	api.GET("/current", h.getCurrent)
	api.GET("/stations", h.listStations)
	api.GET("/stations/:id/history", h.getStationHistory)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/readyz", func(c *gin.Context) {
		if err := current.CheckReadiness(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
