// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Config is the service configuration read from the environment (and .env via godotenv/autoload).
type Config struct {
	Port           string
	Env            string
	AllowedOrigins []string
	LogLevel       logrus.Level

	OracleURL     string
	OracleEnabled bool
	OracleTimeout time.Duration

	RedisAddr          string
	RedisDB            int
	EventChannelPrefix string

	HistorianBatchSize  int
	HistorianFlushDelay time.Duration
	GameInactivity      time.Duration

	PostgresUser     string
	PostgresPassword string
	PGHost           string
	PGPort           string
	PGDatabase       string
}

// Load reads the configuration, applying defaults for anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		Env:                 getEnv("MEMORIA_ENV", "development"),
		OracleURL:           getEnv("ORACLE_URL", ""),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		EventChannelPrefix:  getEnv("EVENT_CHANNEL_PREFIX", "memoria:events"),
		HistorianBatchSize:  getEnvInt("HISTORIAN_BATCH_SIZE", 20),
		HistorianFlushDelay: time.Duration(getEnvInt("HISTORIAN_FLUSH_MS", 500)) * time.Millisecond,
		GameInactivity:      time.Duration(getEnvInt("GAME_INACTIVITY_TIMEOUT_SEC", 600)) * time.Second,
		PostgresUser:        os.Getenv("POSTGRES_USER"),
		PostgresPassword:    os.Getenv("POSTGRES_PASSWORD"),
		PGHost:              os.Getenv("PG_HOST"),
		PGPort:              getEnv("PG_PORT", "5432"),
		PGDatabase:          os.Getenv("PG_DATABASE"),
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "debug"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	cfg.OracleEnabled, err = strconv.ParseBool(getEnv("ORACLE_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid ORACLE_ENABLED: %w", err)
	}
	cfg.OracleTimeout, err = time.ParseDuration(getEnv("ORACLE_TIMEOUT", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ORACLE_TIMEOUT: %w", err)
	}
	if cfg.OracleTimeout <= 0 {
		return nil, fmt.Errorf("ORACLE_TIMEOUT must be positive, got %s", cfg.OracleTimeout)
	}
	return cfg, nil
}

// Production reports whether the service runs in production mode.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Origins returns the CORS origins: the configured list in production, anything otherwise.
func (c *Config) Origins() []string {
	if c.Production() && len(c.AllowedOrigins) > 0 {
		return c.AllowedOrigins
	}
	return []string{"https://*", "http://*"}
}

// DatabaseConfigured reports whether enough Postgres settings exist to try connecting.
func (c *Config) DatabaseConfigured() bool {
	return c.PGHost != "" && c.PGDatabase != ""
}

// ListenAddr binds all interfaces in production and localhost otherwise.
func (c *Config) ListenAddr() string {
	if c.Production() {
		return ":" + c.Port
	}
	return "localhost:" + c.Port
}

func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
