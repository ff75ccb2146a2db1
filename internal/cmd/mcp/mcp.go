// Package mcp parses MCP command flags and launches the stdio tool server.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"log"

	mcpserver "github.com/louisbranch/plotgod/internal/mcp"
	entrypoint "github.com/louisbranch/plotgod/internal/platform/cmd"
	"github.com/louisbranch/plotgod/internal/prep"
	"github.com/louisbranch/plotgod/internal/storage/sqlite"
)

// Config holds MCP command configuration.
type Config struct {
	DBPath       string `env:"PLOTGOD_DB_PATH" envDefault:"data/plotgod.db"`
	OpenAIKey    string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-5.1"`
	ResponsesURL string `env:"PLOTGOD_OPENAI_RESPONSES_URL"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "campaign database path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP tool server on stdio.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(context.Context) error {
		store, err := sqlite.Open(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("close store: %v", err)
			}
		}()

		generator := prep.NewClient(prep.Config{
			APIKey:       cfg.OpenAIKey,
			Model:        cfg.OpenAIModel,
			ResponsesURL: cfg.ResponsesURL,
		})
		server, err := mcpserver.New(store, generator)
		if err != nil {
			return fmt.Errorf("init MCP server: %w", err)
		}
		return server.Serve(ctx)
	})
}
