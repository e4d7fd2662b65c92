package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/sessiontodo/internal/session"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "Todo App", cfg.AppName)
	assert.True(t, cfg.Storage.Enabled)
	assert.Equal(t, session.DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "todos", cfg.Storage.Key)
	assert.Equal(t, "default", cfg.Session)
	assert.False(t, cfg.DemoMode)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_YAML(t *testing.T) {
	p := writeFile(t, "config.yaml", `
app_name: Groceries
demo_mode: true
storage:
  driver: file
  key: groceries
`)
	cfg, err := Load(p, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "Groceries", cfg.AppName)
	assert.True(t, cfg.DemoMode)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "groceries", cfg.Storage.Key)
	assert.True(t, cfg.Storage.Enabled, "unset fields keep defaults")
}

func TestLoad_TOML(t *testing.T) {
	p := writeFile(t, "config.toml", `
app_name = "Chores"
theme = "mono"

[storage]
driver = "memory"
quota_bytes = 4096
`)
	cfg, err := Load(p, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "Chores", cfg.AppName)
	assert.Equal(t, "mono", cfg.Theme)
	assert.Equal(t, session.DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 4096, cfg.Storage.QuotaBytes)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	p := writeFile(t, "config.yaml", "app_name: FromFile\n")
	t.Setenv("TODO_APP_NAME", "FromEnv")
	t.Setenv("TODO_ENABLE_STORAGE", "false")
	t.Setenv("TODO_LOG_LEVEL", "debug")

	cfg, err := Load(p, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "FromEnv", cfg.AppName)
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, session.DriverMemory, cfg.EffectiveDriver())
}

func TestLoad_InvalidFile(t *testing.T) {
	p := writeFile(t, "config.yaml", "storage: [not, a, map]\n")
	_, err := Load(p, t.TempDir())
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Storage.Driver = "redis" }},
		{"blank key", func(c *Config) { c.Storage.Key = "  " }},
		{"negative quota", func(c *Config) { c.Storage.QuotaBytes = -1 }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"unknown theme", func(c *Config) { c.Theme = "pastel" }},
		{"blank session", func(c *Config) { c.Session = " " }},
		{"dot session", func(c *Config) { c.Session = "." }},
		{"parent session", func(c *Config) { c.Session = ".." }},
		{"data dir is a file", func(c *Config) { c.DataDir = writeFile(t, "f", "x") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	assert.NoError(t, cfg.Validate())
}

func TestSessionOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/tmp/data"
	cfg.Session = "work"
	cfg.Storage.Driver = "FILE"

	opts := cfg.SessionOptions()
	assert.Equal(t, session.DriverFile, opts.Driver)
	assert.Equal(t, "/tmp/data", opts.DataDir)
	assert.Equal(t, "work", opts.Session)
}
