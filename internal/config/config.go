// Package config loads designer settings from defaults, an optional YAML file,
// DUNGEON_* environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the designer reads.
const EnvPrefix = "DUNGEON"

// StoreKind selects where dungeon files are written.
type StoreKind string

const (
	// StoreFile writes <data_dir>/<file_name>.json on the local filesystem.
	StoreFile StoreKind = "file"
	// StoreAppData writes to the per-user application data directory.
	StoreAppData StoreKind = "appdata"
)

// UnmarshalText accepts the store names in any case.
func (k *StoreKind) UnmarshalText(text []byte) error {
	switch s := StoreKind(strings.ToLower(strings.TrimSpace(string(text)))); s {
	case StoreFile, StoreAppData:
		*k = s
		return nil
	default:
		return fmt.Errorf("unknown store %q (want %q or %q)", text, StoreFile, StoreAppData)
	}
}

// Config is the full designer configuration.
type Config struct {
	DataDir      string          `mapstructure:"data_dir"`
	FileName     string          `mapstructure:"file_name"`
	Store        StoreKind       `mapstructure:"store"`
	AppName      string          `mapstructure:"app_name"`
	Catalog      string          `mapstructure:"catalog"`
	HistoryDepth int             `mapstructure:"history_depth"`
	Layout       LayoutConfig    `mapstructure:"layout"`
	Log          LogConfig       `mapstructure:"log"`
	Telemetry    TelemetryConfig `mapstructure:"telemetry"`
}

// LayoutConfig controls the generated starter layout.
type LayoutConfig struct {
	Width int   `mapstructure:"width"`
	Depth int   `mapstructure:"depth"`
	Seed  int64 `mapstructure:"seed"` // 0 picks a random seed
}

// LogConfig controls the zap logger and its rotating file.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
	Console    bool   `mapstructure:"console"`
	Dev        bool   `mapstructure:"dev"`
}

// TelemetryConfig controls OTLP trace export.
type TelemetryConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Endpoint        string        `mapstructure:"endpoint"`
	APIKey          string        `mapstructure:"api_key"`
	Dataset         string        `mapstructure:"dataset"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ErrHelp is returned when the caller asked for usage text.
var ErrHelp = pflag.ErrHelp

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "dungeons")
	v.SetDefault("file_name", "dungeon")
	v.SetDefault("store", string(StoreFile))
	v.SetDefault("app_name", "dungeondesigner")
	v.SetDefault("catalog", "")
	v.SetDefault("history_depth", 64)

	v.SetDefault("layout.width", 24)
	v.SetDefault("layout.depth", 16)
	v.SetDefault("layout.seed", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "dungeondesigner.log")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
	v.SetDefault("log.console", false)
	v.SetDefault("log.dev", false)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "https://api.honeycomb.io")
	v.SetDefault("telemetry.api_key", "")
	v.SetDefault("telemetry.dataset", "dungeondesigner")
	v.SetDefault("telemetry.shutdown_timeout", "5s")
}

// Flags returns the command-line flag set bound into the configuration.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("dungeondesigner", pflag.ContinueOnError)
	fs.StringP("config", "c", "", "path to a YAML config file")
	fs.StringP("file", "f", "", "dungeon file name, without extension")
	fs.String("data-dir", "", "directory for dungeon files")
	fs.String("store", "", "where to save dungeons: file or appdata")
	fs.String("catalog", "", "path to a YAML asset catalog")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.Int64("seed", 0, "seed for generated layouts")
	fs.Bool("trace", false, "export traces over OTLP")
	return fs
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"file":      "file_name",
	"data-dir":  "data_dir",
	"store":     "store",
	"catalog":   "catalog",
	"log-level": "log.level",
	"seed":      "layout.seed",
	"trace":     "telemetry.enabled",
}

// Load parses args and merges every configuration source.
func Load(args []string) (*Config, error) {
	fs := Flags()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	path, _ := fs.GetString("config")
	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that no decoder can catch.
func (c *Config) Validate() error {
	var errs []error
	if c.DataDir == "" && c.Store == StoreFile {
		errs = append(errs, errors.New("data_dir must not be empty for the file store"))
	}
	if c.HistoryDepth < 0 {
		errs = append(errs, fmt.Errorf("history_depth must not be negative, got %d", c.HistoryDepth))
	}
	if c.Layout.Width <= 0 || c.Layout.Depth <= 0 {
		errs = append(errs, fmt.Errorf("layout size must be positive, got %dx%d", c.Layout.Width, c.Layout.Depth))
	}
	return errors.Join(errs...)
}
