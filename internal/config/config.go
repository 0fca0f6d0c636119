package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given explicitly.
const DefaultPath = "automata.yaml"

// EnvPrefix prefixes every environment override (e.g. AUTOMATA_STORE_KIND).
const EnvPrefix = "AUTOMATA_"

// Store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config is the runtime configuration shared by the CLI and the servers.
type Config struct {
	LogLevel    string      `mapstructure:"log_level" yaml:"log_level"`
	Workers     int         `mapstructure:"workers" yaml:"workers"`
	MaxWordSize int         `mapstructure:"max_word_size" yaml:"max_word_size"`
	Definitions string      `mapstructure:"definitions" yaml:"definitions"`
	Store       StoreConfig `mapstructure:"store" yaml:"store"`
	HTTP        HTTPConfig  `mapstructure:"http" yaml:"http"`
}

// StoreConfig selects and configures the report store.
type StoreConfig struct {
	Kind     string        `mapstructure:"kind" yaml:"kind"`
	Path     string        `mapstructure:"path" yaml:"path"`
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`

	// EncryptionKey is a base64 encoded 32 byte key. When set, reports are sealed with AES-GCM.
	EncryptionKey string `mapstructure:"encryption_key" yaml:"encryption_key"`
	// Redact lists regular expressions; matching words are masked before reports are saved.
	Redact []string `mapstructure:"redact" yaml:"redact"`
}

// Key decodes EncryptionKey. It returns nil when no key is configured.
func (s StoreConfig) Key() ([]byte, error) {
	if s.EncryptionKey == "" {
		return nil, nil
	}
	key, err := base64.StdEncoding.DecodeString(s.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("store.encryption_key is not valid base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("store.encryption_key must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}

// HTTPConfig configures the HTTP adapter.
type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// Default returns the configuration used when nothing is configured.
func Default() Config {
	return Config{
		LogLevel:    "info",
		Workers:     runtime.GOMAXPROCS(0),
		MaxWordSize: 4096,
		Definitions: ".",
		Store: StoreConfig{
			Kind: StoreMemory,
			Path: ".automata/reports",
			Addr: "localhost:6379",
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
	}
}

// envKeys maps environment variable suffixes to nested config keys.
var envKeys = map[string][]string{
	"LOG_LEVEL":            {"log_level"},
	"WORKERS":              {"workers"},
	"MAX_WORD_SIZE":        {"max_word_size"},
	"DEFINITIONS":          {"definitions"},
	"STORE_KIND":           {"store", "kind"},
	"STORE_PATH":           {"store", "path"},
	"STORE_ADDR":           {"store", "addr"},
	"STORE_PASSWORD":       {"store", "password"},
	"STORE_DB":             {"store", "db"},
	"STORE_PREFIX":         {"store", "prefix"},
	"STORE_TTL":            {"store", "ttl"},
	"STORE_ENCRYPTION_KEY": {"store", "encryption_key"},
	"STORE_REDACT":         {"store", "redact"},
	"HTTP_ADDR":            {"http", "addr"},
}

// Load reads the YAML file at path, applies AUTOMATA_* environment overrides and
// validates the result. A missing file is not an error: defaults are used instead.
func Load(path string) (Config, error) {
	raw := map[string]any{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
			}
			if raw == nil {
				raw = map[string]any{}
			}
		case errors.Is(err, fs.ErrNotExist):
			// no file, defaults only
		default:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	applyEnv(raw, os.LookupEnv)

	cfg := Default()
	if err := decode(raw, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(raw map[string]any, lookup func(string) (string, bool)) {
	for suffix, path := range envKeys {
		val, ok := lookup(EnvPrefix + suffix)
		if !ok {
			continue
		}
		node := raw
		for _, key := range path[:len(path)-1] {
			child, ok := node[key].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[key] = child
			}
			node = child
		}
		node[path[len(path)-1]] = val
	}
}

func decode(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Store.Kind) {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("store.kind must be one of memory, file, redis; got %q", c.Store.Kind))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative"))
	}
	if c.MaxWordSize <= 0 {
		errs = append(errs, fmt.Errorf("max_word_size must be positive"))
	}
	if c.Store.TTL < 0 {
		errs = append(errs, fmt.Errorf("store.ttl must not be negative"))
	}
	if _, err := c.Store.Key(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
