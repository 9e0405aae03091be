package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"ollamakit/internal/common/fsutil"
	"ollamakit/pkg/types"
)

// EnvPrefix prefixes every environment override, e.g. OLLAMAKIT_BASE_URL.
const EnvPrefix = "OLLAMAKIT_"

// Config holds runtime parameters for the CLI and the dashboard.
type Config struct {
	BaseURL               string `json:"base_url" yaml:"base_url" toml:"base_url" env:"BASE_URL" jsonschema:"format=uri" jsonschema_description:"Model server API root"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds" yaml:"request_timeout_seconds" toml:"request_timeout_seconds" env:"REQUEST_TIMEOUT_SECONDS" jsonschema:"minimum=0" jsonschema_description:"Deadline for non-streaming calls, 0 waits forever"`
	ConnectTimeoutSeconds int    `json:"connect_timeout_seconds" yaml:"connect_timeout_seconds" toml:"connect_timeout_seconds" env:"CONNECT_TIMEOUT_SECONDS" jsonschema:"minimum=0"`

	Addr         string `json:"addr" yaml:"addr" toml:"addr" env:"ADDR" jsonschema_description:"Dashboard listen address"`
	LogLevel     string `json:"log_level" yaml:"log_level" toml:"log_level" env:"LOG_LEVEL" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	LogFormat    string `json:"log_format" yaml:"log_format" toml:"log_format" env:"LOG_FORMAT" jsonschema:"enum=console,enum=json"`
	DefaultModel string `json:"default_model" yaml:"default_model" toml:"default_model" env:"DEFAULT_MODEL"`

	Options Sampling `json:"options" yaml:"options" toml:"options" envPrefix:"OPTIONS_"`

	CORSEnabled        bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled" env:"CORS_ENABLED"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins" yaml:"cors_allowed_origins" toml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	MaxBodyBytes       int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" env:"MAX_BODY_BYTES" jsonschema:"minimum=0"`
	TurnTimeoutSeconds int      `json:"turn_timeout_seconds" yaml:"turn_timeout_seconds" toml:"turn_timeout_seconds" env:"TURN_TIMEOUT_SECONDS" jsonschema:"minimum=0" jsonschema_description:"Bound on one dashboard chat turn or generation, 0 disables"`
	SessionTTLMinutes  int      `json:"session_ttl_minutes" yaml:"session_ttl_minutes" toml:"session_ttl_minutes" env:"SESSION_TTL_MINUTES" jsonschema:"minimum=0" jsonschema_description:"Idle time before a dashboard session is dropped, 0 keeps them"`
	MaxSessions        int      `json:"max_sessions" yaml:"max_sessions" toml:"max_sessions" env:"MAX_SESSIONS" jsonschema:"minimum=0" jsonschema_description:"Live dashboard sessions kept, least recently active dropped first, 0 is unbounded"`

	OTLPEndpoint string `json:"otlp_endpoint" yaml:"otlp_endpoint" toml:"otlp_endpoint" env:"OTLP_ENDPOINT" jsonschema_description:"OTLP/HTTP collector host:port, tracing is off when empty"`
}

// Dashboard sampling used when the configuration leaves a field unset.
const (
	DashboardTemperature = 0.7
	DashboardNumPredict  = 1000
)

// Sampling holds configured generation parameters. Nil fields are unset and
// leave the model server's own defaults in effect.
type Sampling struct {
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty" toml:"temperature,omitempty" env:"TEMPERATURE" jsonschema:"minimum=0,maximum=2"`
	NumPredict  *int     `json:"num_predict,omitempty" yaml:"num_predict,omitempty" toml:"num_predict,omitempty" env:"NUM_PREDICT" jsonschema:"minimum=0"`
}

// ToOptions converts the configured fields to request options, nil when
// nothing is set. An explicit zero is kept.
func (s Sampling) ToOptions() *types.Options {
	o := &types.Options{}
	if s.Temperature != nil {
		o.Temperature = types.Float(*s.Temperature)
	}
	if s.NumPredict != nil {
		o.NumPredict = types.Int(*s.NumPredict)
	}
	return o.OrNil()
}

// DashboardOptions is the configured sampling over the dashboard fallbacks.
func (c Config) DashboardOptions() *types.Options {
	base := &types.Options{
		Temperature: types.Float(DashboardTemperature),
		NumPredict:  types.Int(DashboardNumPredict),
	}
	return base.Merge(c.Options.ToOptions())
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:            "http://localhost:11434/api",
		Addr:               ":8501",
		LogLevel:           "info",
		LogFormat:          "console",
		CORSAllowedOrigins: []string{"*"},
		MaxBodyBytes:       1 << 20,
		SessionTTLMinutes:  60,
		MaxSessions:        1000,
	}
}

// DefaultPaths lists the files searched when no config path is given.
func DefaultPaths() []string {
	dir, err := fsutil.ExpandHome("~/.config/ollamakit")
	if err != nil {
		return nil
	}
	var out []string
	for _, ext := range []string{"yaml", "yml", "toml", "json"} {
		out = append(out, filepath.Join(dir, "config."+ext))
	}
	return out
}

// Load reads a configuration file over the defaults based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve builds the effective configuration: defaults, then the file at
// path (or the first of DefaultPaths that exists), then a .env file in the
// working directory, then OLLAMAKIT_* variables. It returns the file used,
// "" when none.
func Resolve(path string) (Config, string, error) {
	if path != "" {
		p, err := fsutil.ExpandHome(path)
		if err != nil {
			return Config{}, "", err
		}
		path = p
	} else if p, ok := fsutil.FirstExisting(DefaultPaths()...); ok {
		path = p
	}
	cfg, err := layered(path)
	if err != nil {
		return cfg, path, err
	}
	return cfg, path, cfg.Validate()
}

func layered(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return cfg, err
		}
	}
	// Existing variables win over .env entries.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any OLLAMAKIT_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url: %q is not an http(s) URL", c.BaseURL)
	}
	if c.RequestTimeoutSeconds < 0 || c.ConnectTimeoutSeconds < 0 || c.TurnTimeoutSeconds < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("log_format: %q is not console or json", c.LogFormat)
	}
	if t := c.Options.Temperature; t != nil && (*t < 0 || *t > 2) {
		return fmt.Errorf("options.temperature: %v outside 0-2", *t)
	}
	if (c.Options.NumPredict != nil && *c.Options.NumPredict < 0) || c.MaxBodyBytes < 0 {
		return fmt.Errorf("options.num_predict and max_body_bytes must not be negative")
	}
	if c.SessionTTLMinutes < 0 || c.MaxSessions < 0 {
		return fmt.Errorf("session_ttl_minutes and max_sessions must not be negative")
	}
	return nil
}
