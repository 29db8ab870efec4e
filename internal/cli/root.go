// Package cli provides the topomap commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"topomap/internal/config"
	"topomap/internal/geom"
	"topomap/internal/logger"
	"topomap/internal/source"
	"topomap/internal/topo"
	"topomap/internal/tui"
)

// runProgram starts the interactive viewer; replaced in tests.
var runProgram = func(ctx context.Context, m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx)).Run()
	return err
}

func newRootCmd() *cobra.Command {
	var flags config.Flags
	cmd := &cobra.Command{
		Use:   "topomap [source]",
		Short: "Interactive TopoJSON region map in the terminal",
		Long: `topomap draws the first object of a TopoJSON topology as a coloured region
map. Hover a region to inspect its properties, click to zoom to it, drag to
pan and scroll to zoom.

The source is a file path or an http(s) URL (default data/regions.topojson).
Settings are also read from the environment and a .env file:
  TOPOMAP_SOURCE, TOPOMAP_PROJECTION, TOPOMAP_COLOR,
  LOG_LEVEL, LOG_FORMAT, LOG_FILE`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags, args)
			if err != nil {
				return err
			}
			f, err := logger.OpenFile(cfg.LogFile)
			if err != nil {
				return err
			}
			defer f.Close()
			log := logger.Setup(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: f})
			log.Info("session_start", "source", cfg.Source, "projection", cfg.Projection.String(), "color", cfg.Color.String())

			m := tui.New(tui.Options{
				Source:     cfg.Source,
				Projection: cfg.Projection,
				Color:      cfg.Color,
				Fetcher:    source.New(log),
				Logger:     log,
			})
			if err := runProgram(cmd.Context(), m); err != nil {
				log.Error("session_error", "err", err)
				return fmt.Errorf("viewer: %w", err)
			}
			log.Info("session_end")
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&flags.Projection, "projection", "", "map projection: mercator or equirectangular")
	cmd.PersistentFlags().StringVar(&flags.Color, "color", "", "fill colours: by-id or random")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	cmd.Flags().StringVar(&flags.LogFile, "log-file", "", "file receiving logs while the viewer runs (default topomap.log)")

	cmd.AddCommand(newRegionsCmd(&flags), newDecodeCmd(&flags))
	return cmd
}

// loadConfig merges defaults, .env, the environment and flags, in that order.
func loadConfig(flags config.Flags, args []string) (config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}
	if len(args) > 0 {
		flags.Source = args[0]
	}
	if err := cfg.Resolve(flags); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// load fetches and decodes the configured source for the batch commands,
// which log to stderr.
func load(cmd *cobra.Command, flags config.Flags, args []string) (geom.FeatureCollection, error) {
	cfg, err := loadConfig(flags, args)
	if err != nil {
		return geom.FeatureCollection{}, err
	}
	log := logger.Setup(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: cmd.ErrOrStderr()})
	data, err := source.New(log).Fetch(cmd.Context(), cfg.Source)
	if err != nil {
		return geom.FeatureCollection{}, err
	}
	fc, err := topo.Decode(data)
	if err != nil {
		log.Error("decode_error", "source", cfg.Source, "err", err)
		return geom.FeatureCollection{}, err
	}
	log.Debug("topology_loaded", "source", cfg.Source, "object", fc.Name, "features", len(fc.Features))
	return fc, nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
