// Package web parses web command flags and launches the campaign manager.
package web

import (
	"context"
	"flag"
	"fmt"

	entrypoint "github.com/louisbranch/plotgod/internal/platform/cmd"
	"github.com/louisbranch/plotgod/internal/prep"
	webserver "github.com/louisbranch/plotgod/internal/web"
)

// Config holds web command configuration.
type Config struct {
	Port         int    `env:"PLOTGOD_WEB_PORT" envDefault:"8080"`
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
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The web server port")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "campaign database path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the campaign manager web service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(context.Context) error {
		server, err := webserver.NewServer(ctx, webserver.Config{
			Port:   cfg.Port,
			DBPath: cfg.DBPath,
			OpenAI: prep.Config{
				APIKey:       cfg.OpenAIKey,
				Model:        cfg.OpenAIModel,
				ResponsesURL: cfg.ResponsesURL,
			},
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		return server.ListenAndServe(ctx)
	})
}
