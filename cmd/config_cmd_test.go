package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/finboard/internal/config"
)

// withBuildEnv isolates the config dir and the package-level flags.
func withBuildEnv(t *testing.T, env string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(config.EnvEnvironment, "")
	t.Setenv(config.EnvAPIURL, "")

	oldBuild, oldEnv, oldFile := buildEnv, flagEnv, flagEnvFile
	t.Cleanup(func() { buildEnv, flagEnv, flagEnvFile = oldBuild, oldEnv, oldFile })
	buildEnv, flagEnv, flagEnvFile = env, "", filepath.Join(dir, ".env")
}

func runSet(t *testing.T, key, value string) {
	t.Helper()
	c := &cobra.Command{}
	c.SetOut(&bytes.Buffer{})
	require.NoError(t, runConfigSet(c, []string{key, value}))
}

func TestConfigSetDoesNotPinEnvironment(t *testing.T) {
	withBuildEnv(t, config.Development)
	runSet(t, "currency.symbol", "$")

	buildEnv = config.Production
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.Production, cfg.API.Environment)
	assert.Equal(t, "$", cfg.Currency.Symbol)

	flagEnv = config.Development
	runSet(t, "currency.symbol", "€")
	flagEnv = ""
	cfg, err = loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.Production, cfg.API.Environment)
}

func TestConfigSetExplicitEnvironment(t *testing.T) {
	withBuildEnv(t, config.Production)
	runSet(t, "api.environment", config.Development)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.Development, cfg.API.Environment)

	url, err := config.ResolveBaseURL(cfg)
	require.NoError(t, err)
	assert.Equal(t, config.DevelopmentBaseURL, url)
}
