// Package config loads and saves finboard settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environments.
const (
	Production  = "production"
	Development = "development"
)

// DevelopmentBaseURL is the gateway address used in development.
const DevelopmentBaseURL = "http://localhost:8080/api"

// Environment variables that override the file.
const (
	EnvEnvironment = "FINBOARD_ENV"
	EnvAPIURL      = "FINBOARD_API_URL"
	EnvOrigin      = "FINBOARD_ORIGIN"
)

// ErrNoOrigin is returned when production has no origin to derive the
// gateway address from.
var ErrNoOrigin = errors.New("config: production requires api.origin or FINBOARD_API_URL")

// Config holds all finboard configuration.
type Config struct {
	API           APIConfig           `toml:"api"`
	Notifications NotificationsConfig `toml:"notifications"`
	Appearance    AppearanceConfig    `toml:"appearance"`
	Currency      CurrencyConfig      `toml:"currency"`
	Reminders     RemindersConfig     `toml:"reminders"`
}

// APIConfig locates the gateway. An empty Environment means the build
// default applies.
type APIConfig struct {
	Environment      string `toml:"environment,omitempty"`
	Origin           string `toml:"origin,omitempty"`
	BaseURL          string `toml:"base_url,omitempty"`
	TimeoutSec       int    `toml:"timeout_sec"`
	UploadTimeoutSec int    `toml:"upload_timeout_sec"`
}

// NotificationsConfig controls toast output.
type NotificationsConfig struct {
	Enabled  bool `toml:"enabled"`
	NotFound bool `toml:"not_found"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// CurrencyConfig holds display currency settings.
type CurrencyConfig struct {
	Symbol string `toml:"symbol"`
}

// RemindersConfig controls the subscription watcher.
type RemindersConfig struct {
	DaysAhead   int `toml:"days_ahead"`
	IntervalSec int `toml:"interval_sec"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			TimeoutSec:       15,
			UploadTimeoutSec: 30,
		},
		Notifications: NotificationsConfig{
			Enabled: true,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Currency: CurrencyConfig{
			Symbol: "₹",
		},
		Reminders: RemindersConfig{
			DaysAhead:   7,
			IntervalSec: 3600,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "finboard")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "finboard")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// SessionPath returns the path of the session database.
func SessionPath() string {
	return filepath.Join(ConfigDir(), "session.db")
}

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load reads the config file, returning defaults if it doesn't exist.
// environment is the fallback for api.environment when the file leaves it
// unset. Pass "" to get the file alone, as Save should see it.
func Load(environment string) (Config, error) {
	cfg := DefaultConfig()
	if environment != "" {
		cfg.API.Environment = environment
	}

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// ApplyEnv overlays FINBOARD_* variables onto cfg.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvEnvironment); v != "" {
		cfg.API.Environment = v
	}
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv(EnvOrigin); v != "" {
		cfg.API.Origin = v
	}
}

// ResolveBaseURL returns the gateway base address. An explicit base_url
// wins; development uses the local gateway; production appends /api to
// the origin.
func ResolveBaseURL(cfg Config) (string, error) {
	if cfg.API.BaseURL != "" {
		return strings.TrimRight(cfg.API.BaseURL, "/"), nil
	}
	// An unset environment resolves as production.
	if strings.EqualFold(cfg.API.Environment, Development) {
		return DevelopmentBaseURL, nil
	}
	origin := strings.TrimRight(cfg.API.Origin, "/")
	if origin == "" {
		return "", ErrNoOrigin
	}
	return origin + "/api", nil
}

// Timeout returns the ordinary request timeout.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// UploadTimeout returns the multipart upload timeout.
func (c APIConfig) UploadTimeout() time.Duration {
	return time.Duration(c.UploadTimeoutSec) * time.Second
}

// Interval returns the reminder poll interval.
func (c RemindersConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSec) * time.Second
}

type field struct {
	get func(*Config) string
	set func(*Config, string) error
}

func stringField(p func(*Config) *string) field {
	return field{
		get: func(c *Config) string { return *p(c) },
		set: func(c *Config, v string) error {
			*p(c) = v
			return nil
		},
	}
}

func intField(p func(*Config) *int) field {
	return field{
		get: func(c *Config) string { return strconv.Itoa(*p(c)) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("expected a non-negative integer, got %q", v)
			}
			*p(c) = n
			return nil
		},
	}
}

func boolField(p func(*Config) *bool) field {
	return field{
		get: func(c *Config) string { return strconv.FormatBool(*p(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("expected true or false, got %q", v)
			}
			*p(c) = b
			return nil
		},
	}
}

var fields = map[string]field{
	"api.environment":         stringField(func(c *Config) *string { return &c.API.Environment }),
	"api.origin":              stringField(func(c *Config) *string { return &c.API.Origin }),
	"api.base_url":            stringField(func(c *Config) *string { return &c.API.BaseURL }),
	"api.timeout_sec":         intField(func(c *Config) *int { return &c.API.TimeoutSec }),
	"api.upload_timeout_sec":  intField(func(c *Config) *int { return &c.API.UploadTimeoutSec }),
	"notifications.enabled":   boolField(func(c *Config) *bool { return &c.Notifications.Enabled }),
	"notifications.not_found": boolField(func(c *Config) *bool { return &c.Notifications.NotFound }),
	"appearance.theme":        stringField(func(c *Config) *string { return &c.Appearance.Theme }),
	"currency.symbol":         stringField(func(c *Config) *string { return &c.Currency.Symbol }),
	"reminders.days_ahead":    intField(func(c *Config) *int { return &c.Reminders.DaysAhead }),
	"reminders.interval_sec":  intField(func(c *Config) *int { return &c.Reminders.IntervalSec }),
}

// Keys lists every settable key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a dotted key such as "api.origin".
func Get(cfg Config, key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("unknown config key %q", key)
	}
	return f.get(&cfg), nil
}

// Set updates a dotted key in cfg.
func Set(cfg *Config, key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	if err := f.set(cfg, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}
