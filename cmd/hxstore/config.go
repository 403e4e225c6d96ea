package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/pthm/hxstore"
)

// Config is the demo server configuration, read from YAML.
//
//	addr: ":8080"
//	prefix: /_s/
//	key: 0123...  # hex, 32 bytes
//	sensitive: false
//	log_level: info
type Config struct {
	Addr      string `yaml:"addr"`
	Prefix    string `yaml:"prefix"`
	Key       string `yaml:"key"`
	Sensitive bool   `yaml:"sensitive"`
	LogLevel  string `yaml:"log_level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Addr:     ":8080",
		Prefix:   hxstore.DefaultPrefix,
		LogLevel: "info",
	}
}

// LoadConfig reads path over the defaults. An empty path yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// KeyBytes decodes the hex key. An empty key yields nil.
func (c Config) KeyBytes() ([]byte, error) {
	if c.Key == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(c.Key)
	if err != nil {
		return nil, fmt.Errorf("key must be hex: %w", err)
	}
	if len(key) < 32 {
		return nil, fmt.Errorf("key must be at least 32 bytes, got %d", len(key))
	}
	return key, nil
}

// Logger builds a production zap logger at the configured level.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	return config.Build()
}

// RegistryOptions converts the config into registry options.
func (c Config) RegistryOptions(logger *zap.Logger) []hxstore.RegistryOption {
	opts := []hxstore.RegistryOption{
		hxstore.WithPrefix(c.Prefix),
		hxstore.WithRegistryLogger(logger),
	}
	if c.Sensitive {
		opts = append(opts, hxstore.Sensitive())
	}
	return opts
}
