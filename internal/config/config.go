// Package config loads flatexp settings from a YAML file and FLATEXP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/aretw0/flatexp/internal/logging"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "flatexp.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FLATEXP_"

const maxConfigFileSize = 1024 * 1024

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the complete flatexp configuration.
type Config struct {
	Log   LogConfig   `koanf:"log"`
	Store StoreConfig `koanf:"store"`
	Redis RedisConfig `koanf:"redis"`
	HTTP  HTTPConfig  `koanf:"http"`
	Build BuildConfig `koanf:"build"`
}

type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error
}

// StoreConfig selects where snapshots are published.
type StoreConfig struct {
	Backend string `koanf:"backend"` // memory, file or redis
	Dir     string `koanf:"dir"`     // file backend directory
	// Redact lists name patterns whose feature and parameter values are masked before publishing.
	Redact []string `koanf:"redact"`
}

type RedisConfig struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	Prefix   string        `koanf:"prefix"`
	TTL      time.Duration `koanf:"ttl"` // 0 keeps snapshots forever
}

type HTTPConfig struct {
	Addr string `koanf:"addr"`
}

// BuildConfig tunes the hierarchical collaborator.
type BuildConfig struct {
	StrictArity bool `koanf:"strict_arity"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads path (or DefaultFile when path is empty and the file exists), then applies
// FLATEXP_* environment overrides, defaults and validation.
//
// Environment variables map to keys by their first underscore:
//
//	FLATEXP_STORE_BACKEND      -> store.backend
//	FLATEXP_REDIS_ADDR         -> redis.addr
//	FLATEXP_BUILD_STRICT_ARITY -> build.strict_arity
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	content, err := readFile(path)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, err
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("%w: config file %s exceeds %d bytes", ErrInvalidConfig, path, maxConfigFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// envKey maps FLATEXP_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, ok := strings.Cut(lower, "_")
	if !ok {
		return lower
	}
	return section + "." + field
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = BackendFile
	}
	if cfg.Store.Dir == "" {
		cfg.Store.Dir = ".flatexp/snapshots"
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.Prefix == "" {
		cfg.Redis.Prefix = "flatexp:snapshot:"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalidConfig, c.Store.Backend)
	}
	for _, p := range c.Store.Redact {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("%w: invalid redact pattern %q", ErrInvalidConfig, p)
		}
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("%w: redis ttl must not be negative", ErrInvalidConfig)
	}
	return nil
}
