package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("Load = %+v, want defaults", cfg)
	}

	cfg, _ = Load(Development)
	if cfg.API.Environment != Development {
		t.Fatalf("Environment = %q, want development", cfg.API.Environment)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.API.Origin = "https://money.example.com"
	cfg.Currency.Symbol = "$"
	cfg.Notifications.NotFound = true
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists = false after Save")
	}

	info, err := os.Stat(ConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("config perm = %o, want 600", perm)
	}

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Fatalf("Load = %+v, want %+v", got, cfg)
	}
}

func TestLoadFileOverridesEnvironmentSeed(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "finboard", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	data := "[api]\nenvironment = \"production\"\norigin = \"https://a.example\"\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(Development)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.Environment != Production || cfg.API.Origin != "https://a.example" {
		t.Fatalf("API = %+v", cfg.API)
	}
	if cfg.API.TimeoutSec != 15 {
		t.Fatalf("TimeoutSec = %d, want default 15", cfg.API.TimeoutSec)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "finboard", "config.toml")
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	_ = os.WriteFile(path, []byte("[api\n"), 0o600)

	if _, err := Load(""); err == nil {
		t.Fatal("Load(bad toml) = nil error")
	}
}

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		api     APIConfig
		want    string
		wantErr error
	}{
		{"explicit wins", APIConfig{Environment: Development, BaseURL: "https://x.example/api/"}, "https://x.example/api", nil},
		{"development", APIConfig{Environment: Development}, DevelopmentBaseURL, nil},
		{"production origin", APIConfig{Environment: Production, Origin: "https://m.example/"}, "https://m.example/api", nil},
		{"production no origin", APIConfig{Environment: Production}, "", ErrNoOrigin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveBaseURL(Config{API: tt.api})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ResolveBaseURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvEnvironment, Development)
	t.Setenv(EnvAPIURL, "http://gw:9000/api")
	t.Setenv(EnvOrigin, "https://o.example")

	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	if cfg.API.Environment != Development || cfg.API.BaseURL != "http://gw:9000/api" || cfg.API.Origin != "https://o.example" {
		t.Fatalf("API = %+v", cfg.API)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := LoadDotEnv(filepath.Join(dir, ".env")); err != nil {
		t.Fatalf("LoadDotEnv(missing) = %v, want nil", err)
	}

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("FINBOARD_ORIGIN=https://env.example\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvOrigin, "")
	os.Unsetenv(EnvOrigin)

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv(EnvOrigin); got != "https://env.example" {
		t.Fatalf("%s = %q, want https://env.example", EnvOrigin, got)
	}
}

func TestDurations(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.API.Timeout() != 15*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout())
	}
	if cfg.API.UploadTimeout() != 30*time.Second {
		t.Errorf("UploadTimeout = %v", cfg.API.UploadTimeout())
	}
	if cfg.Reminders.Interval() != time.Hour {
		t.Errorf("Interval = %v", cfg.Reminders.Interval())
	}
}

func TestGetSet(t *testing.T) {
	cfg := DefaultConfig()

	if err := Set(&cfg, "api.origin", "https://s.example"); err != nil {
		t.Fatal(err)
	}
	if err := Set(&cfg, "reminders.days_ahead", "3"); err != nil {
		t.Fatal(err)
	}
	if err := Set(&cfg, "notifications.enabled", "false"); err != nil {
		t.Fatal(err)
	}
	if cfg.API.Origin != "https://s.example" || cfg.Reminders.DaysAhead != 3 || cfg.Notifications.Enabled {
		t.Fatalf("after Set: %+v", cfg)
	}

	if v, _ := Get(cfg, "reminders.days_ahead"); v != "3" {
		t.Fatalf("Get = %q, want 3", v)
	}
	if err := Set(&cfg, "reminders.days_ahead", "-1"); err == nil {
		t.Fatal("Set(-1) = nil error")
	}
	if err := Set(&cfg, "notifications.enabled", "maybe"); err == nil {
		t.Fatal("Set(maybe) = nil error")
	}
	if _, err := Get(cfg, "nope"); err == nil {
		t.Fatal("Get(unknown) = nil error")
	}
	if len(Keys()) != len(fields) {
		t.Fatalf("Keys = %d, want %d", len(Keys()), len(fields))
	}
}

func TestSaveOmitsUnsetEnvironment(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Currency.Symbol = "$"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "environment") {
		t.Fatalf("config file pins environment:\n%s", data)
	}

	got, err := Load(Production)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.API.Environment != Production || got.Currency.Symbol != "$" {
		t.Fatalf("Load(production) = %+v", got.API)
	}
}
