// ABOUTME: Configuration loader for the sweetshop CLI
// ABOUTME: Reads a local .env when present, then environment variables with defaults

package config

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/sweetworks/sweetshop-cli/internal/credstore"
)

// Config holds the externally tunable settings. The backend base URL is the
// only one the core needs; the rest shape the client process itself.
type Config struct {
	APIURL    string        `env:"SWEETSHOP_API_URL,  default=http://localhost:3000/api"`
	Timeout   time.Duration `env:"SWEETSHOP_TIMEOUT,  default=30s"`
	ConfigDir string        `env:"SWEETSHOP_CONFIG_DIR"`
	Debug     bool          `env:"SWEETSHOP_DEBUG,    default=false"`
}

// Load reads configuration from a .env file (when one exists in the working
// directory) and the environment. ConfigDir falls back to the XDG default.
func Load(ctx context.Context) (*Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = credstore.DefaultDir()
	}
	return &cfg, nil
}

// Default returns the built-in settings, used when the environment cannot be
// processed.
func Default() *Config {
	return &Config{
		APIURL:    "http://localhost:3000/api",
		Timeout:   30 * time.Second,
		ConfigDir: credstore.DefaultDir(),
	}
}
