package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	env "github.com/Skotchmaster/bookbazaar/pkg/config"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	StoreDriver string
	DatabaseURL string

	JWTSecret      []byte
	AccessTokenTTL time.Duration
	CookieSecure   bool
	CSRFEnabled    bool
	CORSOrigins    []string

	KafkaBrokers []string

	SeedData         bool
	CheckoutMarkSold bool
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("env_file_error", "error", err)
	}

	return Config{
		ServiceName: env.EnvDefault("SERVICE_NAME", "bookbazaar"),
		ServerPort:  env.EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    env.EnvDefault("LOG_LEVEL", "info"),

		StoreDriver: env.EnvDefault("STORE_DRIVER", StoreMemory),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:      []byte(os.Getenv("JWT_SECRET")),
		AccessTokenTTL: env.EnvDurationDefault("ACCESS_TOKEN_TTL", 24*time.Hour),
		CookieSecure:   env.EnvBoolDefault("COOKIE_SECURE", false),
		CSRFEnabled:    env.EnvBoolDefault("CSRF_ENABLED", false),
		CORSOrigins:    env.CSV(os.Getenv("CORS_ORIGINS")),

		KafkaBrokers: env.CSV(os.Getenv("KAFKA_BROKERS")),

		SeedData:         env.EnvBoolDefault("SEED_DATA", true),
		CheckoutMarkSold: env.EnvBoolDefault("CHECKOUT_MARK_SOLD", false),
	}
}

func (c Config) Validate() error {
	var errs []error
	if err := env.MustNonEmpty(string(c.JWTSecret), "JWT_SECRET"); err != nil {
		errs = append(errs, err)
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		errs = append(errs, fmt.Errorf("SERVER_PORT out of range: %d", c.ServerPort))
	}
	switch c.StoreDriver {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if err := env.MustNonEmpty(c.DatabaseURL, "DATABASE_URL"); err != nil {
			errs = append(errs, err)
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	return errors.Join(errs...)
}
