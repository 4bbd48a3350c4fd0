package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/jusunglee/mta-board/internal/board"
	"github.com/jusunglee/mta-board/internal/canvas"
	"github.com/jusunglee/mta-board/internal/config"
	"github.com/jusunglee/mta-board/internal/feed"
	"github.com/jusunglee/mta-board/pkg/mta"
)

func main() {
	defaults := mta.DefaultConfig()

	outputFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Image path; a .bmp extension writes BMP, anything else PNG",
			Value:   defaults.OutputPath,
		}
	}

	app := &cli.App{
		Name:  "board",
		Usage: "Render the subway arrival board for the e-paper display",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Board YAML file (built-in board when empty)",
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "MTA API key",
				EnvVars: []string{"MTA_API_KEY"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
				Value: "info",
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "text or json",
				Value:   "text",
				EnvVars: []string{"MTA_BOARD_LOG_FORMAT"},
			},
		},
		Before: func(c *cli.Context) error {
			logger, err := newLogger(c.String("log-level"), c.String("log-format"))
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "render",
				Usage: "Fetch the feeds once and render the board",
				Flags: []cli.Flag{outputFlag()},
				Action: func(c *cli.Context) error {
					cfg, b, err := setup(c)
					if err != nil {
						return err
					}
					return renderOnce(c.Context, cfg, b, c.String("output"), time.Now())
				},
			},
			{
				Name:  "run",
				Usage: "Re-render the board on an interval until interrupted",
				Flags: []cli.Flag{
					outputFlag(),
					&cli.DurationFlag{
						Name:  "interval",
						Usage: "Time between renders",
						Value: defaults.UpdateInterval,
					},
				},
				Action: func(c *cli.Context) error {
					cfg, b, err := setup(c)
					if err != nil {
						return err
					}

					ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
					defer stop()

					return runLoop(ctx, cfg, b, c.String("output"), c.Duration("interval"))
				},
			},
			{
				Name:  "sample",
				Usage: "Render the board from synthetic arrivals without network access",
				Flags: []cli.Flag{outputFlag()},
				Action: func(c *cli.Context) error {
					cfg, b, err := setup(c)
					if err != nil {
						return err
					}

					now := time.Now()
					snap := feed.SampleSnapshot(cfg.board, now)
					path := c.String("output")
					if err := b.Render(path, snap.Arrivals, snap.Alerts, now); err != nil {
						return err
					}
					slog.Info("sample board rendered", "path", path)
					return nil
				},
			},
			{
				Name:  "blank",
				Usage: "Write an all-black image to clear the display",
				Flags: []cli.Flag{outputFlag()},
				Action: func(c *cli.Context) error {
					cv := canvas.New(board.Width, board.Height)
					defer cv.Close()
					cv.Fill(canvas.Color{})

					path := c.String("output")
					if err := board.WriteImage(path, cv.Image()); err != nil {
						return err
					}
					fmt.Printf("Black image saved to: %s\n", path)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("board failed", "error", err)
		os.Exit(1)
	}
}

type settings struct {
	client mta.Config
	board  *config.BoardConfig
}

func setup(c *cli.Context) (settings, *board.Board, error) {
	cfg := mta.DefaultConfig()
	cfg.APIKey = c.String("api-key")
	cfg.ConfigPath = c.String("config")

	boardCfg, err := cfg.LoadBoard()
	if err != nil {
		return settings{}, nil, err
	}

	b, err := board.New(boardCfg.Stations, board.DefaultPalette())
	if err != nil {
		return settings{}, nil, err
	}

	if cfg.APIKey == "" {
		slog.Warn("no MTA API key set; feeds are fetched anonymously")
	}
	return settings{client: cfg, board: boardCfg}, b, nil
}

func renderOnce(ctx context.Context, cfg settings, b *board.Board, path string, now time.Time) error {
	m := feed.NewManager(cfg.board, cfg.client.APIKey, nil, cfg.client.UpdateInterval)

	snap, err := m.Snapshot(ctx, now)
	if err != nil {
		return fmt.Errorf("fetch feeds: %w", err)
	}
	if err := b.Render(path, snap.Arrivals, snap.Alerts, now); err != nil {
		return err
	}

	slog.Info("board rendered", "path", path, "took", time.Since(now))
	return nil
}

// runLoop renders immediately and then on every tick. A failed cycle is
// logged and the previous image stays on disk.
func runLoop(ctx context.Context, cfg settings, b *board.Board, path string, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", interval)
	}

	cycle := func() {
		if err := renderOnce(ctx, cfg, b, path, time.Now()); err != nil {
			slog.Error("render cycle failed", "error", err)
		}
	}

	cycle()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cycle()
		case <-ctx.Done():
			slog.Info("stopping render loop")
			return nil
		}
	}
}

func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}
