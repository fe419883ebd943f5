// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// fetchCommand handles track metadata retrieval
func fetchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "fetch",
		Aliases: []string{"get"},
		Usage:   "Fetch track metadata and similar tracks, write the aggregate as JSON",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      "input",
				UsageText: "track ID file (one per line) or comma-separated track IDs",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: derived from input)",
			},
			&cli.StringFlag{
				Name:  "market",
				Usage: "Market restriction for catalog lookups",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent identifier workers (1 = strictly sequential)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Action: r.Fetch,
	}
}

// configCommand handles configuration scaffolding
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Create a config.toml from the embedded template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
		},
	}
}
