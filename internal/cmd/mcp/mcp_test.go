package mcp

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "data/plotgod.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.OpenAIModel != "gpt-5.1" {
		t.Fatalf("expected default model, got %q", cfg.OpenAIModel)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("PLOTGOD_DB_PATH", "env/alt.db")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-db", "flag/alt.db"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "flag/alt.db" {
		t.Fatalf("expected flag to win over env, got %q", cfg.DBPath)
	}
}
