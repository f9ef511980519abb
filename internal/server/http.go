package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
)

const pingTimeout = 2 * time.Second

// Registrar is implemented by every aggregate handler.
type Registrar interface {
	Register(rg *gin.RouterGroup)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type RouterConfig struct {
	AppName        string
	AppVersion     string
	AllowedOrigins []string
	Development    bool
}

func NewRouter(cfg RouterConfig, db Pinger, log logger.ZapLogger, handlers ...Registrar) *gin.Engine {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestID(), AccessLog(log), Recovery(log), cors.New(corsConfig(cfg.AllowedOrigins)))

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			log.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"service":  cfg.AppName,
				"version":  cfg.AppVersion,
				"database": "unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"service":  cfg.AppName,
			"version":  cfg.AppVersion,
			"database": "ok",
		})
	})

	api := r.Group("/api/v1")
	api.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    cfg.AppName,
			"version": cfg.AppVersion,
			"endpoints": gin.H{
				"categories": "/api/v1/categories",
				"brands":     "/api/v1/brands",
				"tags":       "/api/v1/tags",
				"products":   "/api/v1/products",
			},
		})
	})
	for _, h := range handlers {
		h.Register(api)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "X-Total-Count", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	}
	return cfg
}

// NewHTTPServer wraps the router with the timeouts used in production.
func NewHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
