package modelhttp

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterGinRoutes wires Handler's plain net/http methods into a Gin
// engine, matching the teacher's internal/metrics/gin_adapter.go so the
// handler logic itself never needs to know about Gin.
func RegisterGinRoutes(engine *gin.Engine, handler *Handler, logger Logger, authenticator Authenticator) {
	logging := func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}

	auth := func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var token string
		if authHeader != "" {
			parts := strings.Fields(authHeader)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				token = parts[1]
			}
		}
		if !authenticator.Authenticate(token) {
			logger.Warn("authentication failed", "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}

	v1 := engine.Group("/api/v1")
	v1.Use(logging, auth)
	v1.GET("/status", func(c *gin.Context) { handler.Status(c.Writer, c.Request) })
	v1.GET("/flowchart", func(c *gin.Context) { handler.Flowchart(c.Writer, c.Request) })

	engine.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
