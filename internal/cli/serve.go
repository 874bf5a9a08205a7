package cli

import (
	"context"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/corkboard-io/corkboard/internal/server"
	"github.com/corkboard-io/corkboard/pkg/config"
	"github.com/corkboard-io/corkboard/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the corkboard HTTP API",
		Long:  "Serve the layout pipeline and board storage over HTTP. Connection settings come from the config file, with CORKBOARD_* environment variables (optionally from a .env file) taking precedence.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			// Missing .env files are fine, explicit ones are not.
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return err
				}
			} else {
				_ = godotenv.Load()
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			applyEnvOverrides(&cfg)

			if addr != "" {
				cfg.Server.Addr = addr
			}

			runner, err := c.newRunner(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			st, err := newStore(ctx, cfg.Server)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			srv := server.New(runner,
				server.WithStore(st),
				server.WithLogger(logger),
				server.WithPaletteColors(cfg.Palette.Colors),
			)
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "load environment variables from this file")

	return cmd
}

// newStore picks the board store backend: MongoDB when a URI is configured,
// a local file store otherwise.
func newStore(ctx context.Context, cfg config.ServerConfig) (store.Store, error) {
	if cfg.MongoURI != "" {
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDB,
		})
	}

	dir := cfg.StoreDir
	if dir == "" {
		dir = "boards"
	}
	return store.NewFileStore(dir)
}

// applyEnvOverrides layers CORKBOARD_* environment variables over the config.
func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("CORKBOARD_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("CORKBOARD_STORE_DIR"); v != "" {
		cfg.Server.StoreDir = v
	}
	if v := os.Getenv("CORKBOARD_MONGO_URI"); v != "" {
		cfg.Server.MongoURI = v
	}
	if v := os.Getenv("CORKBOARD_MONGO_DB"); v != "" {
		cfg.Server.MongoDB = v
	}
	if v := os.Getenv("CORKBOARD_CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("CORKBOARD_REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("CORKBOARD_REDIS_PASSWORD"); v != "" {
		cfg.Cache.RedisPassword = v
	}
	if v := os.Getenv("CORKBOARD_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Cache.RedisDB = db
		}
	}
}
