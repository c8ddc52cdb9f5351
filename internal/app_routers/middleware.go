package approuters

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

var availableEndpoints = []string{
	"GET /",
	"GET /health",
	"GET /api-docs",
	"GET /auth/login",
	"GET /auth/logout",
	"GET /auth/status",
	"GET /users",
	"GET /products",
	"GET /orders",
	"GET /reviews",
	"GET /ws/events",
	"GET /api/monitor/stats",
}

// RequestLogger tags every request with an id and logs it once finished.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		c.Next()

		fields := []zap.Field{
			zap.String("requestId", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("clientIp", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// Recovery turns panics into a JSON 500. The panic value is only echoed in development.
func Recovery(logger *zap.Logger, development bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
		)

		message := "Something went wrong"
		if development {
			message = fmt.Sprint(recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": message,
		})
	})
}

// Cors allows every origin without credentials when origins holds "*",
// otherwise exactly the listed origins with credentials.
func Cors(origins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			config.AllowAllOrigins = true
			return cors.New(config)
		}
	}

	config.AllowOrigins = origins
	config.AllowCredentials = true
	return cors.New(config)
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":              "Not Found",
		"message":            fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.RequestURI()),
		"availableEndpoints": availableEndpoints,
	})
}
