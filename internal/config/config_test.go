package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	for _, k := range []string{"SERVER_PORT", "STORE_DRIVER", "ACCESS_TOKEN_TTL", "KAFKA_BROKERS", "SEED_DATA", "CHECKOUT_MARK_SOLD", "CSRF_ENABLED", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "bookbazaar", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.True(t, cfg.SeedData)
	assert.False(t, cfg.CheckoutMarkSold)
	assert.False(t, cfg.CSRFEnabled)
	assert.Nil(t, cfg.CORSOrigins)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CHECKOUT_MARK_SOLD", "true")
	t.Setenv("CORS_ORIGINS", "https://shop.example, https://admin.example")

	cfg := Load()
	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.CheckoutMarkSold)
	assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, cfg.CORSOrigins)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := Config{ServerPort: 8080, StoreDriver: StorePostgres}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DATABASE_URL")

	cfg = Config{ServerPort: 8080, StoreDriver: "mongo", JWTSecret: []byte("s")}
	assert.ErrorContains(t, cfg.Validate(), "STORE_DRIVER")
}
