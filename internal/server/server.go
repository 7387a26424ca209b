package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/san-kum/nuosc/internal/config"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *Metrics
	engine  *gin.Engine
}

// New builds the router. cfg supplies defaults for omitted query
// parameters; reg receives the server's metrics and backs /metrics.
func New(cfg *config.Config, logger *slog.Logger, reg *prometheus.Registry) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: NewMetrics(reg),
		engine:  gin.New(),
	}

	s.engine.Use(gin.Recovery(), s.observe())
	s.engine.GET("/health", HealthCheck)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	v1 := s.engine.Group("/v1")
	{
		v1.GET("/probability", s.handleProbability)
		v1.GET("/sweep/:axis", s.handleSweep)
		v1.GET("/chart/:file", s.handleChart)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// observe logs each request and records its metrics.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		code := c.Writer.Status()

		s.metrics.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
		s.metrics.latency.WithLabelValues(route).Observe(elapsed.Seconds())

		s.logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", code,
			"duration", elapsed)
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
