package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the server's runtime configuration.
type Config struct {
	HTTPAddr string `yaml:"http_addr"`
	// GRPCAddr enables the gRPC health service when non-empty.
	GRPCAddr string `yaml:"grpc_addr"`
	// CatalogDir holds catalog.yaml and overlays/; empty means the embedded catalog.
	CatalogDir string `yaml:"catalog_dir"`
	SavePath   string `yaml:"save_path"`

	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text or json

	ReloadInterval time.Duration `yaml:"reload_interval"`
	// StreamDelay paces battle log entries on the websocket stream.
	StreamDelay time.Duration `yaml:"stream_delay"`
}

// Default values.
func Default() Config {
	return Config{
		HTTPAddr:       ":8080",
		SavePath:       "save.json",
		LogLevel:       "info",
		LogFormat:      "text",
		ReloadInterval: 2 * time.Second,
		StreamDelay:    150 * time.Millisecond,
	}
}

// Load reads the optional YAML file at path over the defaults, applies FF_*
// environment overrides and validates the result. A missing file is not an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GetEnvDefault returns the environment value of key, or defaultValue when
// it is unset or empty.
func GetEnvDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func (c *Config) applyEnv() error {
	c.HTTPAddr = GetEnvDefault("FF_HTTP_ADDR", c.HTTPAddr)
	c.GRPCAddr = GetEnvDefault("FF_GRPC_ADDR", c.GRPCAddr)
	c.CatalogDir = GetEnvDefault("FF_CATALOG_DIR", c.CatalogDir)
	c.SavePath = GetEnvDefault("FF_SAVE_PATH", c.SavePath)
	c.LogLevel = GetEnvDefault("FF_LOG_LEVEL", c.LogLevel)
	c.LogFormat = GetEnvDefault("FF_LOG_FORMAT", c.LogFormat)

	var errs []string
	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"FF_RELOAD_INTERVAL", &c.ReloadInterval},
		{"FF_STREAM_DELAY", &c.StreamDelay},
	}
	for _, d := range durations {
		v := os.Getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", d.key, err))
			continue
		}
		*d.dst = parsed
	}
	if len(errs) > 0 {
		return fmt.Errorf("config env failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Validate checks every field and reports all problems together.
func (c Config) Validate() error {
	var errs []string

	if c.HTTPAddr == "" {
		errs = append(errs, "http_addr is required")
	}
	if c.GRPCAddr != "" && c.GRPCAddr == c.HTTPAddr {
		errs = append(errs, "grpc_addr must differ from http_addr")
	}
	if c.SavePath == "" {
		errs = append(errs, "save_path is required")
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err.Error())
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log_format must be text or json, got %q", c.LogFormat))
	}
	if c.CatalogDir != "" && c.ReloadInterval <= 0 {
		errs = append(errs, "reload_interval must be > 0 when catalog_dir is set")
	}
	if c.StreamDelay < 0 {
		errs = append(errs, "stream_delay must be >= 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
