package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// RouterDependencies collects handler dependencies.
type RouterDependencies struct {
	Health           HealthService
	API              *APIHandlers
	Metrics          prometheus.Gatherer
	AllowedOrigins   []string
	AllowCredentials bool
	ServiceName      string
}

// NewRouter wires the HTTP routes exposed by the backend API.
func NewRouter(logger *zap.Logger, deps RouterDependencies) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	serviceName := deps.ServiceName
	if serviceName == "" {
		serviceName = "cardxpert"
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(requestLogger(logger))
	if len(deps.AllowedOrigins) > 0 {
		router.Use(corsMiddleware(deps.AllowedOrigins, deps.AllowCredentials))
	}

	router.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		payload := gin.H{"status": "ok"}
		if deps.Health != nil {
			if err := deps.Health.Probe(ctx); err != nil {
				logger.Error("health probe failed", zap.Error(err))
				status = http.StatusServiceUnavailable
				payload["status"] = "degraded"
				payload["error"] = err.Error()
			}
		}
		c.JSON(status, payload)
	})

	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}

	if deps.API != nil {
		api := router.Group("/api")
		{
			api.POST("/chat", deps.API.handleChat)
			api.GET("/cards", deps.API.listCards)
			api.GET("/cards/:slug", deps.API.getCard)
			api.POST("/recommendations", deps.API.recommend)
			api.POST("/profile/extract", deps.API.extractProfile)
			api.DELETE("/sessions/:id", deps.API.deleteSession)
		}
	}

	return router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	}
}

func corsMiddleware(allowedOrigins []string, allowCredentials bool) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
	for _, origin := range allowedOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = allowedOrigins
	return cors.New(cfg)
}
