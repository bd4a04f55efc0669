// Package config loads AtlasPack settings from defaults, an optional YAML
// file, ATLASPACK_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/AtlasPack/internal/logging"
	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "atlaspack.yaml"

// EnvPrefix prefixes every environment override, e.g. ATLASPACK_PACK_MAX_WIDTH.
const EnvPrefix = "ATLASPACK"

// ErrConfigExists is returned by WriteDefault when it would overwrite a file.
var ErrConfigExists = errors.New("config file already exists")

// Config is the full configuration file: the log mode and the packing
// settings applied when no flag overrides them.
type Config struct {
	LogMode string         `mapstructure:"log_mode" yaml:"log_mode"`
	Pack    model.Settings `mapstructure:"pack" yaml:"pack"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogMode: logging.ModeDev,
		Pack:    model.DefaultSettings(),
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"log-mode":     "log_mode",
	"output":       "pack.output",
	"format":       "pack.format",
	"min-width":    "pack.min_width",
	"min-height":   "pack.min_height",
	"max-width":    "pack.max_width",
	"max-height":   "pack.max_height",
	"padding-x":    "pack.padding_x",
	"padding-y":    "pack.padding_y",
	"allow-flip":   "pack.allow_flip",
	"force-square": "pack.force_square",
	"merge":        "pack.merge",
	"heuristic":    "pack.heuristic",
	"split":        "pack.split",
	"trim":         "pack.trim",
	"report":       "pack.report",
	"dxf":          "pack.dxf",
	"cache-dir":    "pack.cache_dir",
}

// Load builds the configuration. configPath may be empty, in which case
// DefaultFile is read if it exists. Only flags the user actually set
// override file and environment values; flags may be nil.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if _, err := os.Stat(DefaultFile); err == nil {
		v.SetConfigFile(DefaultFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	format, err := model.ParseMapFormat(string(cfg.Pack.Format))
	if err != nil {
		return nil, err
	}
	cfg.Pack.Format = format

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("log_mode", d.LogMode)

	v.SetDefault("pack.min_width", d.Pack.MinWidth)
	v.SetDefault("pack.min_height", d.Pack.MinHeight)
	v.SetDefault("pack.max_width", d.Pack.MaxWidth)
	v.SetDefault("pack.max_height", d.Pack.MaxHeight)
	v.SetDefault("pack.padding_x", d.Pack.PaddingX)
	v.SetDefault("pack.padding_y", d.Pack.PaddingY)
	v.SetDefault("pack.allow_flip", d.Pack.AllowFlip)
	v.SetDefault("pack.force_square", d.Pack.ForceSquare)
	v.SetDefault("pack.merge", d.Pack.Merge)
	v.SetDefault("pack.heuristic", d.Pack.Heuristic)
	v.SetDefault("pack.split", d.Pack.Split)
	v.SetDefault("pack.trim", d.Pack.Trim)

	v.SetDefault("pack.output", d.Pack.Output)
	v.SetDefault("pack.format", string(d.Pack.Format))
	v.SetDefault("pack.report", d.Pack.Report)
	v.SetDefault("pack.dxf", d.Pack.DXF)
	v.SetDefault("pack.cache_dir", d.Pack.CacheDir)
}

// WriteDefault writes the built-in configuration as YAML to path. An existing
// file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
