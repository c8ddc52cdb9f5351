package approuters

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodhub/internal/auth"
	"foodhub/internal/configuration"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func StartServer(container *configuration.Container) {
	logger := container.Logger
	appServer := createAppServer(container)

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("application server starting", zap.String("addr", fmt.Sprintf("http://localhost:%d", container.Config.Server.AppPort)))
		if err := appServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("app server error: %w", err)
		}
	}()

	// Listen for shutdown signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		logger.Error("server error", zap.Error(err))
	case sig := <-quit:
		logger.Info("initiating graceful shutdown", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Websocket connections are hijacked and not tracked by Shutdown.
	logger.Info("stopping hub and closing all websocket connections")
	container.Hub.Stop()

	if err := appServer.Shutdown(ctx); err != nil {
		logger.Error("app server shutdown error", zap.Error(err))
	}

	logger.Info("graceful shutdown complete")
}

func createAppServer(container *configuration.Container) *http.Server {
	return &http.Server{
		Addr:        fmt.Sprintf(":%d", container.Config.Server.AppPort),
		Handler:     NewRouter(container),
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: it would also cut long-lived websocket feeds.
		IdleTimeout: 60 * time.Second,
	}
}

// NewRouter builds the engine with every middleware and route mounted.
func NewRouter(container *configuration.Container) *gin.Engine {
	if container.Config.Server.Env != configuration.EnvDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		RequestLogger(container.Logger),
		Recovery(container.Logger, container.Config.Server.Env == configuration.EnvDevelopment),
		Cors(container.Config.Cors.AllowedOrigins),
		auth.Sessions(container.Sessions),
	)

	router.GET("/", welcome)
	router.GET("/health", health(container))

	DocsRouters(router)
	AuthRouters(router, container)
	ResourceRouters(router, container)
	MonitorRouters(router, container)

	router.NoRoute(notFound)

	return router
}

func welcome(c *gin.Context) {
	u, ok := auth.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"message":       "Welcome to FoodHub API",
		"authenticated": ok,
		"user":          u,
		"links": gin.H{
			"login":    "/auth/login",
			"logout":   "/auth/logout",
			"status":   "/auth/status",
			"docs":     "/api-docs",
			"products": "/products",
			"events":   "/ws/events",
		},
	})
}

func health(container *configuration.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := container.Store.Ping(ctx); err != nil {
			container.Logger.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	}
}
