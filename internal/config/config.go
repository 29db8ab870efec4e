package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"topomap/internal/colorize"
	"topomap/internal/projection"
)

const (
	DefaultSource  = "data/regions.topojson"
	DefaultLogFile = "topomap.log"
)

// Config holds everything the viewer needs before it starts.
type Config struct {
	Source     string
	Projection projection.Kind
	Color      colorize.Mode

	LogLevel  string
	LogFormat string
	LogFile   string
}

// Flags holds CLI values; non-empty fields override the environment.
type Flags struct {
	Source     string
	Projection string
	Color      string
	LogLevel   string
	LogFile    string
}

func Default() Config {
	return Config{
		Source:     DefaultSource,
		Projection: projection.Mercator,
		Color:      colorize.ByID,
		LogLevel:   "info",
		LogFormat:  "text",
		LogFile:    DefaultLogFile,
	}
}

// LoadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// FromEnv starts from Default and applies TOPOMAP_* and LOG_* variables.
func FromEnv() (Config, error) {
	cfg := Default()
	if v := os.Getenv("TOPOMAP_SOURCE"); v != "" {
		cfg.Source = v
	}
	if v := os.Getenv("TOPOMAP_PROJECTION"); v != "" {
		k, err := projection.ParseKind(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: TOPOMAP_PROJECTION: %w", err)
		}
		cfg.Projection = k
	}
	if v := os.Getenv("TOPOMAP_COLOR"); v != "" {
		m, err := colorize.ParseMode(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: TOPOMAP_COLOR: %w", err)
		}
		cfg.Color = m
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	return cfg, nil
}

// Resolve applies CLI flags on top of c.
func (c *Config) Resolve(flags Flags) error {
	if flags.Source != "" {
		c.Source = flags.Source
	}
	if flags.Projection != "" {
		k, err := projection.ParseKind(flags.Projection)
		if err != nil {
			return fmt.Errorf("config: --projection: %w", err)
		}
		c.Projection = k
	}
	if flags.Color != "" {
		m, err := colorize.ParseMode(flags.Color)
		if err != nil {
			return fmt.Errorf("config: --color: %w", err)
		}
		c.Color = m
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.LogFile != "" {
		c.LogFile = flags.LogFile
	}
	return nil
}
