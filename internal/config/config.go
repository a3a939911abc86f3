package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Backends de almacenamiento soportados.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	Port      string `mapstructure:"PORT"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	AppName   string `mapstructure:"APP_NAME"`

	StorageBackend   string `mapstructure:"STORAGE_BACKEND"`
	DBDSN            string `mapstructure:"DB_DSN"`
	RedisURL         string `mapstructure:"REDIS_URL"`
	KVNamespace      string `mapstructure:"KV_NAMESPACE"`
	MemoryQuotaBytes int    `mapstructure:"MEMORY_QUOTA_BYTES"`
}

var keys = []string{
	"PORT",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"APP_NAME",
	"STORAGE_BACKEND",
	"DB_DSN",
	"REDIS_URL",
	"KV_NAMESPACE",
	"MEMORY_QUOTA_BYTES",
}

// Load lee variables de entorno y, si existe, el archivo indicado (o .env).
// Un archivo ausente no es error.
func Load(file string) (*Config, error) {
	v := viper.New()
	if strings.TrimSpace(file) == "" {
		file = ".env"
	}
	v.SetConfigFile(file)
	if !strings.Contains(file, ".") || strings.HasSuffix(file, ".env") {
		v.SetConfigType("env")
	}
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "vet-patient-records")
	v.SetDefault("STORAGE_BACKEND", BackendMemory)
	v.SetDefault("MEMORY_QUOTA_BYTES", 0)

	// BindEnv explícito para que Unmarshal vea las claves sin default
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory:
	case BackendPostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return fmt.Errorf("DB_DSN is required when STORAGE_BACKEND is %q", BackendPostgres)
		}
	case BackendRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return fmt.Errorf("REDIS_URL is required when STORAGE_BACKEND is %q", BackendRedis)
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q, %q or %q, got %q",
			BackendMemory, BackendPostgres, BackendRedis, c.StorageBackend)
	}

	if c.MemoryQuotaBytes < 0 {
		return fmt.Errorf("MEMORY_QUOTA_BYTES must not be negative")
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT is required")
	}
	return nil
}

// Addr para http.Server.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}
