// Package router wires the report server's routes and middleware.
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CameronDeb/meta-aria-2/internal/config"
	"github.com/CameronDeb/meta-aria-2/internal/handlers"
)

// Setup builds the gin engine serving generated reports and, when the
// metrics store is enabled, the progress endpoints backed by it.
func Setup(log *zap.Logger, reportsDir string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))

	// Generated report pages are plain static files.
	router.Static("/reports", reportsDir)

	resultsHandler := handlers.NewResultsHandler(log, reportsDir)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/api/sessions")
	})

	api := router.Group("/api")
	{
		api.GET("/sessions", resultsHandler.ListSessions)
	}

	// Cross-session queries need the store.
	if config.Conf.Database.Enabled {
		api.GET("/sessions/:id/metrics", resultsHandler.SessionMetrics)
		router.GET("/charts/timeline", resultsHandler.Timeline)
	}

	return router
}

// requestLogger emits one structured zap line per request. The server is a
// local report viewer, so successful page and report loads stay at Debug
// and only failures surface on the console.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			fields = append(fields, zap.String("errors", errs.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("Request failed", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("Request rejected", fields...)
		default:
			log.Debug("Request served", fields...)
		}
	}
}
