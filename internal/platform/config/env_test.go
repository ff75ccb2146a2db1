package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Port   int    `env:"PLOTGOD_TEST_PORT" envDefault:"8080"`
	DBPath string `env:"PLOTGOD_TEST_DB_PATH" envDefault:"data/plotgod.db"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.DBPath != "data/plotgod.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("PLOTGOD_TEST_DB_PATH", "/tmp/other.db")

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.DBPath != "/tmp/other.db" {
		t.Fatalf("expected override db path, got %q", cfg.DBPath)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("PLOTGOD_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvRejectsNilTarget(t *testing.T) {
	if err := ParseEnv(nil); err == nil {
		t.Fatal("expected nil target error")
	}
}
