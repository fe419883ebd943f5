package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/vvaidy/spotify-track-info/internal/services"
	"github.com/vvaidy/spotify-track-info/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	shared.ApplyEnv(config)

	var catalog services.Catalog
	if !config.Credentials.Spotify.Empty() {
		if svc, err := services.NewSpotifyService(config.Credentials.Spotify.Map()); err == nil {
			svc.SetRateLimit(config.Fetch.RateLimit)
			catalog = svc
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Catalog: catalog,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "spotify-track-info",
		Usage:    "Fetch Spotify track metadata with similar-track enrichment",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
