// Package config loads the datatree configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/datatree/config.toml
// (see [Path]). Every key is optional; missing keys keep the values of
// [Default]. Unknown keys and invalid values are errors with code
// INVALID_CONFIG.
//
//	[chart]
//	colormap = "hsv"
//	offset = 20.0
//	font_family = "Ebrima"
//	font_sizes = [8.0, 7.0, 6.5]
//
//	[output]
//	formats = ["png"]
//	dir = ""
//
//	[cache]
//	backend = "file"   # file, redis or none
//	ttl = "168h"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/datatree/pkg/chart"
)

// EnvPath overrides the config file location.
const EnvPath = "DATATREE_CONFIG"

// Config is the whole configuration file.
type Config struct {
	Chart  ChartConfig  `toml:"chart"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`
}

// ChartConfig holds the chart defaults.
type ChartConfig struct {
	Colormap   string    `toml:"colormap" validate:"required,colormap"`
	Offset     float64   `toml:"offset"`
	FontFamily string    `toml:"font_family" validate:"required"`
	FontSizes  []float64 `toml:"font_sizes" validate:"len=3,dive,gt=0"`
}

// OutputConfig holds render output defaults.
type OutputConfig struct {
	Formats []string `toml:"formats" validate:"min=1,dive,oneof=png jpg jpeg svg pdf json"`
	Dir     string   `toml:"dir"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend       string `toml:"backend" validate:"oneof=file redis none"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db" validate:"gte=0"`
	TTL           string `toml:"ttl" validate:"omitempty,duration"`
}

// Default returns the built-in configuration.
func Default() Config {
	opts := chart.DefaultOptions()
	return Config{
		Chart: ChartConfig{
			Colormap:   opts.Colormap,
			Offset:     opts.Offset,
			FontFamily: opts.FontFamily,
			FontSizes:  opts.FontSizes[:],
		},
		Output: OutputConfig{
			Formats: []string{"png"},
		},
		Cache: CacheConfig{
			Backend:   "file",
			RedisAddr: "localhost:6379",
			TTL:       "168h",
		},
	}
}

// Path returns the config file location: $DATATREE_CONFIG if set, else
// config.toml in the datatree directory under the user config dir.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "datatree", "config.toml"), nil
}

// ChartOptions converts the chart section to build options.
func (c Config) ChartOptions() chart.Options {
	var sizes chart.FontSizes
	copy(sizes[:], c.Chart.FontSizes)
	return chart.Options{
		Colormap:   c.Chart.Colormap,
		Offset:     c.Chart.Offset,
		FontFamily: c.Chart.FontFamily,
		FontSizes:  sizes,
	}
}

// CacheTTL returns the parsed cache TTL; zero means entries never expire.
// Call on a validated config.
func (c Config) CacheTTL() time.Duration {
	if c.Cache.TTL == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Cache.TTL)
	return d
}
