package config

import (
	"fmt"
	"os"
	"time"
)

// ServerConfig holds the mock server settings
type ServerConfig struct {
	Addr      string        `validate:"required"`
	JWTSecret string        `validate:"required,min=16"`
	TokenTTL  time.Duration `validate:"min=1m"`
	Seed      bool
	Debug     bool
}

// DefaultServer returns the mock server defaults
func DefaultServer() ServerConfig {
	return ServerConfig{
		Addr:      ":8787",
		JWTSecret: "cornerkicks-local-development-secret",
		TokenTTL:  7 * 24 * time.Hour,
		Seed:      true,
	}
}

// LoadServer reads CORNERKICKS_MOCK_* variables over the defaults
func LoadServer(lookup func(string) (string, bool)) (ServerConfig, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg := DefaultServer()

	if v, ok := lookup(EnvPrefix + "MOCK_ADDR"); ok {
		cfg.Addr = v
	}
	if v, ok := lookup(EnvPrefix + "JWT_SECRET"); ok {
		cfg.JWTSecret = v
	}
	if v, ok := lookup(EnvPrefix + "TOKEN_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %sTOKEN_TTL: %w", EnvPrefix, err)
		}
		cfg.TokenTTL = d
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings after flags have been applied
func (c ServerConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
