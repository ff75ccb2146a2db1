// Package main imports the newest Archivist session summary into the
// local campaign store.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/louisbranch/plotgod/internal/platform/config"
	"github.com/louisbranch/plotgod/internal/tools/archivist"
)

type envConfig struct {
	APIKey  string `env:"ARCHIVIST_API_KEY"`
	BaseURL string `env:"PLOTGOD_ARCHIVIST_BASE_URL"`
	DBPath  string `env:"PLOTGOD_DB_PATH"`
}

func main() {
	log.SetPrefix("[ARCHIVIST] ")

	var envCfg envConfig
	if err := config.ParseEnv(&envCfg); err != nil {
		config.Exitf("Error: %v", err)
	}

	cfg, err := archivist.ParseConfig(flag.CommandLine, os.Args[1:], archivist.Config{
		DBPath:  envCfg.DBPath,
		BaseURL: envCfg.BaseURL,
		APIKey:  envCfg.APIKey,
	})
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	if err := archivist.Run(context.Background(), cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
