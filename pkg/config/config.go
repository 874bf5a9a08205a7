// Package config loads corkboard settings from TOML files.
//
// Every field has a sensible default; a missing config file is not an
// error. Settings cover the layout constants, the palette override, the
// cache backend, and the server.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/corkboard-io/corkboard/pkg/classify"
	"github.com/corkboard-io/corkboard/pkg/errors"
	"github.com/corkboard-io/corkboard/pkg/layout"
)

// Cache backend names accepted in [cache] backend.
const (
	CacheBackendNone   = "none"
	CacheBackendMemory = "memory"
	CacheBackendFile   = "file"
	CacheBackendRedis  = "redis"
)

// Config is the root configuration document.
type Config struct {
	Layout  layout.Settings `toml:"layout"`
	Palette PaletteConfig   `toml:"palette"`
	Cache   CacheConfig     `toml:"cache"`
	Server  ServerConfig    `toml:"server"`
}

// PaletteConfig overrides the classification color palette.
type PaletteConfig struct {
	// Colors replaces the default 10-color palette when non-empty.
	Colors []string `toml:"colors"`
}

// CacheConfig selects and configures the layout memoization backend.
type CacheConfig struct {
	Backend  string `toml:"backend"` // none, memory, file, redis
	Dir      string `toml:"dir"`     // file backend; empty = user cache dir
	TTLHours int    `toml:"ttl_hours"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// ServerConfig configures the HTTP server and its board store.
type ServerConfig struct {
	Addr     string `toml:"addr"`
	StoreDir string `toml:"store_dir"` // file store; used when mongo_uri is empty
	MongoURI string `toml:"mongo_uri"`
	MongoDB  string `toml:"mongo_db"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: layout.DefaultSettings(),
		Cache: CacheConfig{
			Backend:  CacheBackendFile,
			TTLHours: 24,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads a TOML config file, layering it over the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks backend names and layout constants.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case "", CacheBackendNone, CacheBackendMemory, CacheBackendFile, CacheBackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}

	if c.Layout.GridColumns < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "grid_columns must be at least 1")
	}
	if c.Layout.HeaderHeight < 0 || c.Layout.GroupPadding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout paddings cannot be negative")
	}

	return nil
}

// NewPalette builds the palette from the config, falling back to the
// default colors.
func (c *Config) NewPalette() *classify.Palette {
	return classify.NewPalette(c.Palette.Colors...)
}
