package commons

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/config"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_YAMLBase(t *testing.T) {
	path := writeFile(t, `
server:
  port: 9090
database:
  driver: sqlite
  path: /tmp/orderdesk.db
  queryTimeout: 2s
transaction:
  maxRetryAttempts: 4
log:
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/orderdesk.db", cfg.Database.Path)
	assert.Equal(t, 2*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 4, cfg.Transaction.MaxRetryAttempts)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5*time.Second, cfg.Transaction.Timeout)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, `
database:
  driver: sqlite
  path: /tmp/from-file.db
`)
	t.Setenv("DB_PATH", "/tmp/from-env.db")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.db", cfg.Database.Path)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "reading config file")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeFile(t, "server: [unclosed")

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "parsing config file")
}
