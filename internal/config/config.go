package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// devOrigins are allowed when running in debug mode without explicit origins.
var devOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}

// Config holds the application configuration.
type Config struct {
	ServerPort      int           `yaml:"port" env:"PORT" env-default:"8080"`
	DatabasePath    string        `yaml:"database_path" env:"DATABASE_PATH" env-default:"./chroniclex.db"`
	Debug           bool          `yaml:"debug" env:"DEBUG" env-default:"false"`
	LogLevel        string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	AllowedOrigins  []string      `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
	BcryptCost      int           `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Load loads configuration from the file named by CONFIG_PATH, if set, and
// then from environment variables, falling back to defaults.
func Load() (*Config, error) {
	var cfg Config

	var err error
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", cfg.ServerPort)
	}
	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("DATABASE_PATH must not be empty")
	}
	return &cfg, nil
}

// CORSOrigins returns the origins the API accepts cross-origin requests from.
// Debug mode falls back to the local frontend dev server when nothing is configured.
func (c *Config) CORSOrigins() []string {
	if len(c.AllowedOrigins) == 0 && c.Debug {
		return devOrigins
	}
	return c.AllowedOrigins
}

// AllowAllOrigins reports whether any origin is accepted, which is only the case in debug mode.
func (c *Config) AllowAllOrigins() bool {
	return c.Debug
}
