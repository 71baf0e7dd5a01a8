package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, triggerSecret string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware, the vote links in the email land on another origin
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, triggerSecret)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler, triggerSecret string) {
	r.GET("/digests/:date", handler.GetDigest)
	r.GET("/health", handler.GetHealth)

	r.POST("/api/feedback", handler.PostFeedback)

	// Manual run trigger (conditionally enabled with authentication)
	if triggerSecret != "" {
		api := r.Group("/api")
		api.Use(authMiddleware(triggerSecret))
		{
			api.POST("/trigger", handler.PostTrigger)
		}
		slog.Info("Trigger endpoint enabled with authentication")
	} else {
		slog.Info("Trigger endpoint disabled (TRIGGER_SECRET not set)")
	}

	r.GET("/", func(c *gin.Context) {
		endpoints := map[string]string{
			"digest":   "/digests/<date>",
			"feedback": "/api/feedback (POST)",
			"health":   "/health",
		}

		if triggerSecret != "" {
			endpoints["trigger"] = "/api/trigger (POST, requires Authorization: Bearer <secret>)"
		}

		c.JSON(200, gin.H{
			"service":     "Daily Digest",
			"version":     handler.version,
			"description": "Feed aggregation and LLM-scored daily digest",
			"endpoints":   endpoints,
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware creates bearer token authentication middleware
func authMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := ""
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			provided = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if provided == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authorization required",
				"message": "Provide the trigger secret as Authorization: Bearer <secret>",
			})
			c.Abort()
			return
		}

		if provided != secret {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid secret",
				"message": "The provided trigger secret is not valid",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
