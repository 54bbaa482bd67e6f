// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
)

// Config is the complete runtime configuration. DatabaseURL may be empty,
// in which case the server falls back to the in-memory store.
type Config struct {
	Port           int           `env:"PORT,default=4000"`
	DatabaseURL    string        `env:"DATABASE_URL"`
	MigrationsPath string        `env:"MIGRATIONS_PATH,default=migrations"`
	JWTSecret      string        `env:"JWT_SECRET,required"`
	TokenTTL       time.Duration `env:"TOKEN_TTL,default=24h"`
	CORSOrigin     string        `env:"CORS_ORIGIN,default=http://localhost:5173"`
	LogLevel       string        `env:"LOG_LEVEL,default=info"`
}

// Load decodes the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
