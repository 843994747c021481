package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/config"
	"orderdesk/internal/infrastructure/database"
)

func TestMigrateCmd_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")
	t.Setenv("DB_DRIVER", config.DriverSQLite)
	t.Setenv("DB_PATH", path)
	t.Setenv("LOG_LEVEL", "error")

	root := NewRootCmd()
	root.SetArgs([]string{"migrate", "--env-file", ""})
	require.NoError(t, root.ExecuteContext(context.Background()))

	p, err := database.Open(context.Background(), config.DatabaseConfig{Driver: config.DriverSQLite, Path: path})
	require.NoError(t, err)
	defer p.Close()

	var n int
	require.NoError(t, p.DB().QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('customer', 'deliveryman', 'item', 'orders', 'order_item')`).Scan(&n))
	assert.Equal(t, 5, n)
}

func TestBootstrap_LoadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	dbPath := filepath.Join(dir, "from-env.db")
	require.NoError(t, os.WriteFile(envFile, []byte("DB_DRIVER=sqlite\nDB_PATH="+dbPath+"\n"), 0o600))

	// godotenv never overrides variables that are already set
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_PATH", "")
	os.Unsetenv("DB_DRIVER")
	os.Unsetenv("DB_PATH")

	cfg, zapLogger, err := bootstrap(&options{envFile: envFile})
	require.NoError(t, err)
	require.NotNil(t, zapLogger)

	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, dbPath, cfg.Database.Path)
}

func TestBootstrap_MissingEnvFileIsIgnored(t *testing.T) {
	t.Setenv("DB_DRIVER", config.DriverSQLite)
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "x.db"))

	_, _, err := bootstrap(&options{envFile: filepath.Join(t.TempDir(), "absent.env")})

	assert.NoError(t, err)
}

func TestBootstrap_InvalidConfig(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")

	_, _, err := bootstrap(&options{})

	assert.Error(t, err)
}
