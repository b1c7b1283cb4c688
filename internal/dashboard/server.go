package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// ServerOpts holds configuration for the health/dashboard HTTP server.
type ServerOpts struct {
	Logger       *slog.Logger
	ArtifactPath string
	Port         int
}

// Serve runs the health-check and dashboard viewer endpoints. It blocks until
// ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, opts ServerOpts) error {
	if opts.Port <= 0 {
		opts.Port = 8000
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: newRouter(opts.ArtifactPath),
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	logger.Info("health server listening", "port", opts.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dashboard server: %w", err)
	}
	return nil
}

// newRouter exposes the health check and the current dashboard artifact.
func newRouter(artifactPath string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/dashboard", func(c *gin.Context) {
		if _, err := os.Stat(artifactPath); err != nil {
			c.String(http.StatusNotFound, "Dashboard not found")
			return
		}
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.File(artifactPath)
	})
	return router
}
