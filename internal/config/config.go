package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	MongoURI    string
	MongoDB     string
	Port        string
	StoreDriver string

	LogLevel  string
	LogFormat string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	DefaultCategories []string

	// EnvFileLoaded indica si se cargó un .env local
	EnvFileLoaded bool

	Redis     RedisConfig
	Migration MigrationConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MigrationConfig struct {
	Interval      time.Duration
	BatchSize     int
	CheckpointKey string
}

// LoadConfig lee la configuración del entorno.
// Solo carga .env si existe (desarrollo local); en producción se usan las variables del sistema.
func LoadConfig() (*Config, error) {
	envFileLoaded := false
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
		envFileLoaded = true
	}

	cfg := &Config{
		MongoURI:          getEnv("MONGO_URI", ""),
		MongoDB:           getEnv("MONGO_DB", "productCatalog"),
		Port:              getEnv("PORT", "8080"),
		StoreDriver:       strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		DefaultCategories: splitList(getEnv("DEFAULT_CATEGORIES", "Electronics,Furniture,Groceries,Tools")),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Migration: MigrationConfig{
			CheckpointKey: getEnv("MIGRATION_CHECKPOINT_KEY", "catalog:migration:category-backfill"),
		},
	}

	var err error
	if cfg.ReadTimeout, err = parseDurationEnv("HTTP_READ_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = parseDurationEnv("HTTP_WRITE_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Migration.Interval, err = parseDurationEnv("MIGRATION_INTERVAL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Migration.BatchSize, err = parseIntEnv("MIGRATION_BATCH_SIZE", 1000); err != nil {
		return nil, err
	}
	if cfg.Redis.DB, err = parseIntEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.EnvFileLoaded = envFileLoaded
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when STORE_DRIVER=%s", StoreMongo)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.Migration.BatchSize < 1 {
		return fmt.Errorf("MIGRATION_BATCH_SIZE must be positive")
	}
	return nil
}

// getEnv trata una variable vacía igual que una ausente
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// parseDurationEnv lee una duración o devuelve el valor por defecto
func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
