package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SeAkman0/calocam-cli/internal/config"
)

func TestLoadMissingFileReturnsZeroConfig(t *testing.T) {
	t.Parallel()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load missing config: %v", err)
	}
	if cfg.DBPath != "" || cfg.CalorieTolerance != 0 {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "db_path: /tmp/custom.db\ncalorie_tolerance: 0.15\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Fatalf("expected db path, got %q", cfg.DBPath)
	}
	if cfg.CalorieTolerance != 0.15 {
		t.Fatalf("expected tolerance 0.15, got %v", cfg.CalorieTolerance)
	}
}

func TestLoadRejectsBadTolerance(t *testing.T) {
	t.Parallel()
	for _, bad := range []string{"calorie_tolerance: 1\n", "calorie_tolerance: -0.1\n"} {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := config.Load(path); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("db_path: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
