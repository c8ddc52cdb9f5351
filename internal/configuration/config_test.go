package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = `{
  "mongo": {
    "uri": "mongodb://localhost:27017",
    "database": "foodhub",
    "usersCollection": "users",
    "productsCollection": "products",
    "ordersCollection": "orders",
    "reviewsCollection": "reviews"
  },
  "server": {"app_port": 3000, "env": "development"},
  "session": {"secret": "s"},
  "kafka": {"topic": "foodhub.resource-events"},
  "cors": {"allowedOrigins": ["*"]}
}`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"CONFIG_PATH", "MONGODB_URL", "MONGODB_DATABASE", "PORT", "NODE_ENV", "APP_ENV",
		"SESSION_SECRET", "GITHUB_CLIENT_ID", "GITHUB_CLIENT_SECRET", "CALLBACK_URL", "KAFKA_BROKERS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_FileOnly(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(writeConfig(t, baseConfig))
	require.NoError(t, err)

	assert.Equal(t, "foodhub", cfg.Mongo.Database)
	assert.Equal(t, 3000, cfg.Server.AppPort)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "http://localhost:3000/auth/callback", cfg.OAuth.CallbackURL)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URL", "mongodb://db:27017")
	t.Setenv("PORT", "8080")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("SESSION_SECRET", "prod-secret")
	t.Setenv("GITHUB_CLIENT_ID", "cid")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := LoadConfig(writeConfig(t, baseConfig))
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.Uri)
	assert.Equal(t, 8080, cfg.Server.AppPort)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "prod-secret", cfg.Session.Secret)
	assert.Equal(t, "cid", cfg.OAuth.ClientID)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, productionCallbackURL, cfg.OAuth.CallbackURL)
}

func TestLoadConfig_ExplicitCallbackWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("NODE_ENV", "production")
	t.Setenv("CALLBACK_URL", "https://api.example.com/auth/callback")

	cfg, err := LoadConfig(writeConfig(t, baseConfig))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/auth/callback", cfg.OAuth.CallbackURL)
}

func TestLoadConfig_ConfigPathEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_PATH", writeConfig(t, baseConfig))

	cfg, err := LoadConfig("does-not-exist.json")
	require.NoError(t, err)
	assert.Equal(t, "users", cfg.Mongo.UsersCollection)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "malformed json", body: `{"mongo":`},
		{name: "missing database", body: `{"mongo":{"uri":"x"},"server":{"app_port":3000,"env":"development"},"session":{"secret":"s"},"cors":{"allowedOrigins":["*"]}}`},
		{name: "unknown env", body: baseConfig, env: map[string]string{"APP_ENV": "staging"}},
		{name: "bad port", body: baseConfig, env: map[string]string{"PORT": "eighty"}},
		{name: "bad callback", body: baseConfig, env: map[string]string{"CALLBACK_URL": "not a url"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}
