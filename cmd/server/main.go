package main

import (
	"context"
	"log"
	"time"

	approuters "foodhub/internal/app_routers"
	"foodhub/internal/configuration"

	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	container, err := configuration.BuildContainer(ctx, configuration.DefaultConfigPath)
	cancel()
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}

	// Ensure cleanup on shutdown
	defer func() {
		if err := container.Close(); err != nil {
			container.Logger.Error("cleanup failed", zap.Error(err))
		}
	}()

	approuters.StartServer(container)
}
