package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  port: 9090\n"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "csv", cfg.Storage.Driver)
	assert.Equal(t, "media/customers", cfg.Storage.MediaRoot)
	assert.Equal(t, 465, cfg.Mail.Port)
	assert.Equal(t, 10*time.Second, cfg.Geocoder.Timeout)
	assert.Equal(t, 1.0, cfg.Geocoder.RequestsPerSecond)
	assert.Equal(t, "main", cfg.Sync.Branch)
	assert.Equal(t, DefaultTechnicians, cfg.Technicians)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("SMTP_PASSWORD", "from-env")
	t.Setenv("GIT_TOKEN", "ghp_env")
	t.Setenv("DATABASE_DSN", "file:test.db")

	cfg, err := Load(writeConfig(t, `
storage:
  driver: sqlite
  dsn: file:yaml.db
mail:
  password: from-yaml
technicians: [Alice]
`))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Mail.Password)
	assert.Equal(t, "ghp_env", cfg.Sync.Token)
	assert.Equal(t, "file:test.db", cfg.Storage.DSN)
	assert.Equal(t, []string{"Alice"}, cfg.Technicians)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server: [not, a, map]\n"))
	assert.Error(t, err)
}
