package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/demonlist/app"
	listservice "github.com/Black-And-White-Club/demonlist/app/modules/list/application"
	"github.com/Black-And-White-Club/demonlist/config"
	"github.com/Black-And-White-Club/demonlist/internal/observability"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newCLI(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCLI(stdout, stderr io.Writer) *cli.App {
	var (
		cfg    *config.Config
		logger *slog.Logger
	)

	// withService opens the configured source and hands a list service to fn.
	withService := func(c *cli.Context, fn func(listservice.Service) error) error {
		sources, err := app.OpenSources(c.Context, cfg, logger)
		if err != nil {
			return err
		}
		defer sources.Close()

		metrics := observability.NewNoopListMetrics()
		service := listservice.NewListService(
			sources.Repository(cfg, logger, metrics),
			cfg.Scoring,
			logger,
			metrics,
			observability.Tracer(),
		)
		return fn(service)
	}

	printJSON := func(v any) error {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	return &cli.App{
		Name:      "demonlist",
		Usage:     "serve and query a ranked demon list",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"DEMONLIST_CONFIG"},
			},
		},
		Before: func(c *cli.Context) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to load .env: %w", err)
			}

			var err error
			cfg, err = config.LoadConfig(c.String("config"))
			if err != nil {
				return err
			}
			logger = observability.NewLogger(stderr, cfg.Observability.LogLevel, cfg.Observability.LogFormat).
				With("env", cfg.Observability.Environment)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API and NATS responders",
				Action: func(c *cli.Context) error {
					ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
					defer stop()

					application, err := app.NewApp(ctx, cfg, logger)
					if err != nil {
						return fmt.Errorf("failed to initialize app: %w", err)
					}
					defer func() {
						if err := application.Close(); err != nil {
							logger.Error("Error during shutdown", "error", err)
						}
					}()

					if err := application.Start(ctx); err != nil {
						return err
					}
					logger.Info("Application shut down gracefully")
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "print every level in rank order",
				Action: func(c *cli.Context) error {
					return withService(c, func(s listservice.Service) error {
						levels, err := s.FetchList(c.Context)
						if err != nil {
							return err
						}
						return printJSON(levels)
					})
				},
			},
			{
				Name:  "leaderboard",
				Usage: "print player standings",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "top", Usage: "limit output to the first N players"},
				},
				Action: func(c *cli.Context) error {
					return withService(c, func(s listservice.Service) error {
						standings, err := s.FetchLeaderboard(c.Context)
						if err != nil {
							return err
						}
						if top := c.Int("top"); top > 0 && top < len(standings) {
							standings = standings[:top]
						}
						return printJSON(standings)
					})
				},
			},
			{
				Name:      "level",
				Usage:     "print the level at a rank",
				ArgsUsage: "<rank>",
				Action: func(c *cli.Context) error {
					var rank int
					if _, err := fmt.Sscan(c.Args().First(), &rank); err != nil {
						return fmt.Errorf("rank must be an integer: %q", c.Args().First())
					}
					return withService(c, func(s listservice.Service) error {
						detail, err := s.GetLevel(c.Context, rank)
						if err != nil {
							return err
						}
						return printJSON(detail)
					})
				},
			},
			{
				Name:      "player",
				Usage:     "print one player's standing",
				ArgsUsage: "<user>",
				Action: func(c *cli.Context) error {
					user := c.Args().First()
					if user == "" {
						return errors.New("player id is required")
					}
					return withService(c, func(s listservice.Service) error {
						position, err := s.GetPlayer(c.Context, user)
						if err != nil {
							return err
						}
						return printJSON(position)
					})
				},
			},
			{
				Name:  "export",
				Usage: "write the leaderboard workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "leaderboard.xlsx"},
				},
				Action: func(c *cli.Context) error {
					return withService(c, func(s listservice.Service) error {
						f, err := os.Create(c.String("out"))
						if err != nil {
							return err
						}
						if err := s.ExportLeaderboard(c.Context, f); err != nil {
							f.Close()
							return err
						}
						return f.Close()
					})
				},
			},
			{
				Name:  "chart",
				Usage: "render the points curve of the list",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "points.png"},
				},
				Action: func(c *cli.Context) error {
					return withService(c, func(s listservice.Service) error {
						png, err := s.RenderPointsChart(c.Context)
						if err != nil {
							return err
						}
						return os.WriteFile(c.String("out"), png, 0o644)
					})
				},
			},
		},
	}
}
