// Package server exposes workouts, analysis and coaching over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"trainer/internal/export"
	"trainer/internal/metrics"
	"trainer/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP API
type Server struct {
	workouts *service.WorkoutService
	analysis *service.AnalysisService
	log      logrus.FieldLogger
	router   *gin.Engine
}

// New creates a server and registers its routes
func New(workouts *service.WorkoutService, analysis *service.AnalysisService, log logrus.FieldLogger) *Server {
	s := &Server{
		workouts: workouts,
		analysis: analysis,
		log:      log,
		router:   gin.New(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(gin.Recovery(), s.requestLogger(), cors.Default())

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/workouts", s.handleListWorkouts)
		api.POST("/workouts", s.handleAddWorkout)
		api.GET("/workouts/:id", s.handleGetWorkout)
		api.DELETE("/workouts/:id", s.handleDeleteWorkout)

		api.GET("/analysis", s.handleAnalysis)
		api.GET("/coach", s.handleCoach)
		api.GET("/dashboard", s.handleDashboard)
		api.GET("/zones", s.handleZones)

		api.GET("/export.xlsx", s.handleExport(export.FormatXLSX))
		api.GET("/export.csv", s.handleExport(export.FormatCSV))
	}
}

// Handler returns the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.log.WithField("address", addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	s.log.Info("http server stopped")
	return nil
}

// requestLogger logs each request and counts it by route template
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		metrics.RecordRequest(c.FullPath(), status)

		entry := s.log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  status,
			"elapsed": time.Since(start),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithError(c.Errors.Last())
		}
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Debug("request handled")
		}
	}
}
