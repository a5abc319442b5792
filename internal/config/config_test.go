// ABOUTME: Tests for configuration loading
// ABOUTME: Covers defaults and environment overrides

package config

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// t.Setenv registers the restore; the explicit unset gives a truly
	// absent variable rather than a set-but-empty one.
	for _, key := range []string{"SWEETSHOP_API_URL", "SWEETSHOP_TIMEOUT", "SWEETSHOP_CONFIG_DIR", "SWEETSHOP_DEBUG"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://localhost:3000/api" {
		t.Errorf("APIURL = %q, want the default", cfg.APIURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
	if cfg.ConfigDir == "" {
		t.Error("ConfigDir should fall back to the XDG default")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SWEETSHOP_API_URL", "http://shop.example/api")
	t.Setenv("SWEETSHOP_TIMEOUT", "5s")
	t.Setenv("SWEETSHOP_CONFIG_DIR", dir)
	t.Setenv("SWEETSHOP_DEBUG", "true")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://shop.example/api" {
		t.Errorf("APIURL = %q, want the env value", cfg.APIURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.ConfigDir != dir {
		t.Errorf("ConfigDir = %q, want %q", cfg.ConfigDir, dir)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.APIURL != "http://localhost:3000/api" {
		t.Errorf("APIURL = %q, want the default", cfg.APIURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
}
