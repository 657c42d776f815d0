package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CARDIOMED_CONFIG", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_NAME", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 8, cfg.Advisor.MaxSteps)
	assert.Equal(t, 30*time.Minute, cfg.Notifier.Lookahead)
	assert.False(t, cfg.Notifier.Enabled)
	assert.Contains(t, cfg.Database.DSN(), "dbname=cardiomed")
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("CARDIOMED_CONFIG", "")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("KNOWLEDGE_TOP_K", "6")
	t.Setenv("NOTIFIER_INTERVAL", "90s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 6, cfg.Knowledge.TopK)
	assert.Equal(t, 90*time.Second, cfg.Notifier.Interval)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
database:
  url: postgres://u:p@localhost/cm
advisor:
  max_steps: 4
`), 0o600))
	t.Setenv("CARDIOMED_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres://u:p@localhost/cm", cfg.Database.DSN())
	assert.Equal(t, 4, cfg.Advisor.MaxSteps)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.Database.URL = "postgres://localhost/cm"
	cfg.Advisor.MaxSteps = 8
	cfg.Knowledge.TopK = 4
	require.NoError(t, cfg.Validate())

	cfg.Notifier.Enabled = true
	assert.Error(t, cfg.Validate())

	cfg.SendGrid.APIKey = "key"
	cfg.Notifier.Interval = time.Minute
	cfg.Notifier.Lookahead = time.Minute
	assert.NoError(t, cfg.Validate())

	cfg.Advisor.MaxSteps = 0
	assert.Error(t, cfg.Validate())
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("warn", "console", "cardiomed-test")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))

	logger, err = NewLogger("nonsense", "json", "")
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
