// Package cli implements the corkboard command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/corkboard-io/corkboard/pkg/buildinfo"
	"github.com/corkboard-io/corkboard/pkg/cache"
	"github.com/corkboard-io/corkboard/pkg/config"
	"github.com/corkboard-io/corkboard/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "corkboard"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Corkboard arranges canvas objects into labeled groups",
		Long:         `Corkboard is a layout tool for 2D canvases: it stacks labeled groups vertically, packs the rest into a grid, and renders the result as SVG or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(log.DebugLevel)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "path to a TOML config file")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.labelsCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())

	return root
}

// =============================================================================
// Config & Runner Factory
// =============================================================================

// loadConfig reads the --config file, or the defaults when unset.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.ConfigPath)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	cch, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cch, nil, c.Logger), nil
}

func newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.CacheBackendNone:
		return cache.NewNullCache(), nil
	case config.CacheBackendMemory:
		return cache.NewMemoryCache(time.Duration(cfg.TTLHours)*time.Hour, 10*time.Minute), nil
	case config.CacheBackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		dir := cfg.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/corkboard/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
