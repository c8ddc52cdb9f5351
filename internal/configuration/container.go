package configuration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodhub/internal/auth"
	"foodhub/internal/db"
	"foodhub/internal/event"
	"foodhub/internal/handler"
	"foodhub/internal/hub"
	"foodhub/internal/repo"
	"foodhub/internal/service"

	"github.com/gin-contrib/sessions"
	"go.uber.org/zap"
)

type Container struct {
	Users    handler.ResourceHandler
	Products handler.ResourceHandler
	Orders   handler.ResourceHandler
	Reviews  handler.ResourceHandler
	Monitor  handler.MonitorHandler
	OAuth    *auth.OAuthHandler
	Sessions sessions.Store
	Hub      *hub.Hub
	Store    *db.Handle
	Config   Config
	Logger   *zap.Logger

	// private - for cleanup
	kafka *event.KafkaPublisher
}

func NewLogger(env string) (*zap.Logger, error) {
	if env == EnvDevelopment {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func BuildContainer(ctx context.Context, configPath string) (*Container, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := NewLogger(config.Server.Env)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	logger.Info("config loaded",
		zap.String("env", config.Server.Env),
		zap.Int("port", config.Server.AppPort),
		zap.String("database", config.Mongo.Database),
		zap.String("callbackUrl", config.OAuth.CallbackURL),
	)

	store := db.NewHandle(logger)
	if err := store.Init(ctx, config.Mongo.Uri, config.Mongo.Database); err != nil {
		return nil, err
	}
	if err := store.EnsureUniqueIndex(ctx, config.Mongo.UsersCollection, "email"); err != nil {
		logger.Warn("unique email index not created", zap.Error(err))
	}

	Hub := hub.NewHub(config.Cors.AllowedOrigins, logger)

	sinks := []event.Sink{Hub}
	var kafka *event.KafkaPublisher
	if len(config.Kafka.Brokers) > 0 {
		topic := config.Kafka.Topic
		if topic == "" {
			topic = event.TopicResourceEvents
		}
		kafka = event.NewKafkaPublisher(config.Kafka.Brokers, topic, logger)
		sinks = append(sinks, kafka)
		logger.Info("kafka event sink enabled", zap.Strings("brokers", config.Kafka.Brokers), zap.String("topic", topic))
	}
	bus := event.NewBus(logger, sinks...)

	if config.OAuth.ClientID == "" || config.OAuth.ClientSecret == "" {
		logger.Warn("GitHub OAuth credentials are not set; login will fail")
	}

	return &Container{
		Users:    newResourceHandler(store, config.Mongo.UsersCollection, service.Users, bus, logger),
		Products: newResourceHandler(store, config.Mongo.ProductsCollection, service.Products, bus, logger),
		Orders:   newResourceHandler(store, config.Mongo.OrdersCollection, service.Orders, bus, logger),
		Reviews:  newResourceHandler(store, config.Mongo.ReviewsCollection, service.Reviews, bus, logger),
		Monitor:  handler.NewMonitorHandler(hub.NewMonitorService(Hub)),
		OAuth: auth.NewOAuthHandler(auth.Config{
			ClientID:     config.OAuth.ClientID,
			ClientSecret: config.OAuth.ClientSecret,
			CallbackURL:  config.OAuth.CallbackURL,
		}, logger),
		Sessions: auth.NewStore(config.Session.Secret, config.IsProduction()),
		Hub:      Hub,
		Store:    store,
		Config:   *config,
		Logger:   logger,
		kafka:    kafka,
	}, nil
}

func newResourceHandler[T any](
	store *db.Handle,
	collection string,
	resource service.Resource[T],
	bus event.Sink,
	logger *zap.Logger,
) handler.ResourceHandler {
	mongoRepo := db.NewRepository[T](store, collection)
	resourceRepo := repo.NewResourceRepository(mongoRepo, logger)
	svc := service.NewResourceService(resource, collection, resourceRepo, bus, logger)
	return handler.NewResourceHandler(svc, logger)
}

// Close gracefully shuts down all connections
func (c *Container) Close() error {
	var errs []error

	// Stop the hub first (closes all WebSocket connections)
	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.kafka != nil {
		if err := c.kafka.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close kafka writer: %w", err))
		}
	}

	if c.Store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.Store.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if c.Logger != nil {
		_ = c.Logger.Sync()
	}

	return errors.Join(errs...)
}
