// Package config loads CLI and mock server settings.
// Precedence, highest first: flags (applied by the caller), environment,
// .env file, YAML config file, defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dlehdeod1/newcornerkicks/internal/schedule"
)

// EnvPrefix prefixes every environment variable read by this package
const EnvPrefix = "CORNERKICKS_"

const (
	DefaultAPIURL   = "http://localhost:8787/api"
	DefaultTitle    = "코너킥스 수요 풋살 20:00"
	DefaultMatchDay = "wed"
)

// Auth backends
const (
	AuthBackendFile  = "file"
	AuthBackendRedis = "redis"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// AuthConfig selects where the login is persisted
type AuthConfig struct {
	Backend  string        `yaml:"backend" validate:"oneof=file redis"`
	File     string        `yaml:"file" validate:"required_if=Backend file"`
	RedisURL string        `yaml:"redisUrl" validate:"required_if=Backend redis"`
	RedisKey string        `yaml:"redisKey"`
	RedisTTL time.Duration `yaml:"redisTtl" validate:"min=0"`
}

// ClubConfig holds club-specific defaults for new sessions
type ClubConfig struct {
	Title    string `yaml:"title" validate:"required"`
	MatchDay string `yaml:"matchDay" validate:"required"`
}

// Config is the CLI configuration
type Config struct {
	APIURL  string        `yaml:"apiUrl" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" validate:"min=0"`
	Output  string        `yaml:"output" validate:"oneof=text json"`
	Verbose bool          `yaml:"verbose"`
	LogFile string        `yaml:"logFile"`
	Auth    AuthConfig    `yaml:"auth"`
	Club    ClubConfig    `yaml:"club"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Dir returns ~/.cornerkicks
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cornerkicks"
	}
	return filepath.Join(home, ".cornerkicks")
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		APIURL:  DefaultAPIURL,
		Timeout: 15 * time.Second,
		Output:  OutputText,
		Auth: AuthConfig{
			Backend:  AuthBackendFile,
			File:     filepath.Join(Dir(), "auth.json"),
			RedisKey: "cornerkicks:auth",
		},
		Club: ClubConfig{
			Title:    DefaultTitle,
			MatchDay: DefaultMatchDay,
		},
	}
}

// Source says where to look for settings. Empty fields use the defaults;
// a missing file is only an error when its path was given explicitly.
type Source struct {
	ConfigPath string
	EnvFile    string
	// LookupEnv defaults to os.LookupEnv
	LookupEnv func(string) (string, bool)
}

// Load resolves the configuration from defaults, file, .env and environment
func Load(src Source) (*Config, error) {
	lookup := src.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	dotenv, err := readDotenv(src.EnvFile)
	if err != nil {
		return nil, err
	}
	env := func(key string) (string, bool) {
		if v, ok := lookup(EnvPrefix + key); ok {
			return v, true
		}
		v, ok := dotenv[EnvPrefix+key]
		return v, ok
	}

	cfg := Default()

	path, explicit := src.ConfigPath, src.ConfigPath != ""
	if !explicit {
		if v, ok := env("CONFIG"); ok && v != "" {
			path, explicit = v, true
		} else {
			path = DefaultPath()
		}
	}
	if err := readFile(cfg, path, explicit); err != nil {
		return nil, err
	}

	if err := applyEnv(cfg, env); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readDotenv(path string) (map[string]string, error) {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	return values, nil
}

func readFile(cfg *Config, path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config, env func(string) (string, bool)) error {
	strs := map[string]*string{
		"API_URL":      &cfg.APIURL,
		"OUTPUT":       &cfg.Output,
		"LOG_FILE":     &cfg.LogFile,
		"AUTH_BACKEND": &cfg.Auth.Backend,
		"AUTH_FILE":    &cfg.Auth.File,
		"REDIS_URL":    &cfg.Auth.RedisURL,
		"REDIS_KEY":    &cfg.Auth.RedisKey,
		"CLUB_TITLE":   &cfg.Club.Title,
		"MATCH_DAY":    &cfg.Club.MatchDay,
	}
	for key, dst := range strs {
		if v, ok := env(key); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"TIMEOUT":   &cfg.Timeout,
		"REDIS_TTL": &cfg.Auth.RedisTTL,
	}
	for key, dst := range durations {
		if v, ok := env(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
			}
			*dst = d
		}
	}

	if v, ok := env("VERBOSE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sVERBOSE: %w", EnvPrefix, err)
		}
		cfg.Verbose = b
	}
	return nil
}

// Validate checks struct tags and the match day
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if _, ok := schedule.ParseWeekday(cfg.Club.MatchDay); !ok {
		return fmt.Errorf("config validation failed: unknown match day %q", cfg.Club.MatchDay)
	}
	return nil
}

// MatchWeekday returns the configured match day
func (c *Config) MatchWeekday() time.Weekday {
	wd, ok := schedule.ParseWeekday(c.Club.MatchDay)
	if !ok {
		return time.Wednesday
	}
	return wd
}
