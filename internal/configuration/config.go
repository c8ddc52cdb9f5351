package configuration

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DefaultConfigPath = "config/config.dev.json"

	EnvDevelopment = "development"
	EnvProduction  = "production"

	productionCallbackURL = "https://foodhub-api-mhb6.onrender.com/auth/callback"
)

type MongoConfig struct {
	Uri                string `json:"uri" validate:"required"`
	Database           string `json:"database" validate:"required"`
	UsersCollection    string `json:"usersCollection" validate:"required"`
	ProductsCollection string `json:"productsCollection" validate:"required"`
	OrdersCollection   string `json:"ordersCollection" validate:"required"`
	ReviewsCollection  string `json:"reviewsCollection" validate:"required"`
}

type ServerConfig struct {
	AppPort int    `json:"app_port" validate:"required,min=1,max=65535"`
	Env     string `json:"env" validate:"required,oneof=development production test"`
}

type SessionConfig struct {
	Secret string `json:"secret" validate:"required"`
}

type OAuthConfig struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	CallbackURL  string `json:"callbackUrl" validate:"omitempty,url"`
}

type KafkaConfig struct {
	Brokers []string `json:"brokers"`
	Topic   string   `json:"topic"`
}

type CorsConfig struct {
	AllowedOrigins []string `json:"allowedOrigins" validate:"required,min=1"`
}

type Config struct {
	Mongo   MongoConfig   `json:"mongo"`
	Server  ServerConfig  `json:"server"`
	Session SessionConfig `json:"session"`
	OAuth   OAuthConfig   `json:"oauth"`
	Kafka   KafkaConfig   `json:"kafka"`
	Cors    CorsConfig    `json:"cors"`
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == EnvProduction
}

// LoadConfig reads the JSON file at path, applies .env and environment
// overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("CONFIG_PATH"); ok && v != "" {
		path = v
	}
	if path == "" {
		path = DefaultConfigPath
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var config Config
	if err := json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	config.OAuth.CallbackURL = config.callbackURL()

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

func (c *Config) applyEnv() error {
	override(&c.Mongo.Uri, "MONGODB_URL")
	override(&c.Mongo.Database, "MONGODB_DATABASE")
	override(&c.Server.Env, "NODE_ENV")
	override(&c.Server.Env, "APP_ENV")
	override(&c.Session.Secret, "SESSION_SECRET")
	override(&c.OAuth.ClientID, "GITHUB_CLIENT_ID")
	override(&c.OAuth.ClientSecret, "GITHUB_CLIENT_SECRET")
	override(&c.OAuth.CallbackURL, "CALLBACK_URL")

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.AppPort = port
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitList(v)
	}
	return nil
}

func (c *Config) callbackURL() string {
	if c.OAuth.CallbackURL != "" {
		return c.OAuth.CallbackURL
	}
	if c.IsProduction() {
		return productionCallbackURL
	}
	return fmt.Sprintf("http://localhost:%d/auth/callback", c.Server.AppPort)
}

func override(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
