package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"github.com/vvaidy/spotify-track-info/internal/formatter"
	"github.com/vvaidy/spotify-track-info/internal/models"
	"github.com/vvaidy/spotify-track-info/internal/services"
	"github.com/vvaidy/spotify-track-info/internal/shared"
	"github.com/vvaidy/spotify-track-info/internal/tasks"
)

// Fetch resolves the input identifiers, enriches each with similar tracks,
// and writes the aggregate document.
//
// Setup failures (credentials, identifier parsing, output write) abort the
// run; per-identifier catalog failures are recorded inside the document and
// still exit successfully.
func (r *Runner) Fetch(ctx context.Context, cmd *cli.Command) error {
	input := cmd.StringArg("input")
	if input == "" {
		return fmt.Errorf("%w: provide a track ID file or comma-separated track IDs", shared.ErrMissingArgument)
	}

	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	config := r.config
	if configPath := cmd.String("config"); configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if loaded, err := shared.LoadConfig(configPath); err == nil {
				shared.ApplyEnv(loaded)
				config = loaded
			} else {
				r.logger.Warn("failed to load config, keeping current settings", "error", err)
			}
		}
	}

	if r.catalog == nil && !config.Credentials.Spotify.Empty() {
		svc, err := services.NewSpotifyService(config.Credentials.Spotify.Map())
		if err != nil {
			return err
		}
		svc.SetRateLimit(config.Fetch.RateLimit)
		r.catalog = svc
		r.engine = tasks.NewTrackEngine(svc, r.logger)
	}
	if r.catalog == nil {
		return fmt.Errorf("%w: Spotify client_id and client_secret must be set in config.toml or the environment", shared.ErrMissingCredentials)
	}

	logger := shared.WithLogger(r.logger, "run", shared.GenerateID())

	// Identifier parsing and the count cap run before any network access.
	ids, err := shared.ReadTrackIDs(input)
	if err != nil {
		return err
	}
	logger.Info("processing track IDs", "count", len(ids))

	if err := r.catalog.Authenticate(ctx); err != nil {
		return err
	}

	outPath := cmd.String("output")
	if outPath == "" {
		outPath = formatter.OutputPath(input)
	}
	if prev, err := formatter.Relocate(outPath); err != nil {
		return err
	} else if prev != "" {
		logger.Info("relocated existing output", "to", prev)
	}

	market := cmd.String("market")
	if market == "" {
		market = config.Fetch.Market
	}
	workers := int(cmd.Int("workers"))
	if workers <= 0 {
		workers = config.Fetch.Workers
	}

	progress := make(chan tasks.ProgressUpdate, 2*len(ids)+1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	rs, err := r.engine.Fetch(ctx, progress, ids, tasks.FetchOpts{
		Market:    market,
		Workers:   workers,
		RateLimit: config.Fetch.RateLimit,
	})
	close(progress)
	<-done
	if err != nil {
		return err
	}

	if err := formatter.WriteResultSet(outPath, rs); err != nil {
		return err
	}

	retrieved, failed := 0, 0
	for _, tr := range rs.Tracks {
		if tr.Status == models.StatusRetrieved {
			retrieved++
		} else {
			failed++
		}
	}

	r.writePlainln("%s", r.palette.OK(fmt.Sprintf("✓ Saved track information to %s", outPath)))
	r.writePlain("  Tracks: %d retrieved, %d failed\n", retrieved, failed)
	if failed > 0 {
		r.writePlain("%s\n", r.palette.Warn("  Failures are recorded inside the output document."))
	}

	return nil
}

// ConfigInit scaffolds a config file from the embedded template.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.writePlain("%s\n", r.palette.OK(fmt.Sprintf("✓ Config written to %s", path)))
	r.writePlain("%s\n", r.palette.Help("Fill in your Spotify client_id and client_secret before fetching."))
	return nil
}
