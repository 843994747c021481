package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"orderdesk/internal/config"
	"orderdesk/internal/infrastructure/database"
)

// SetupSQLiteDB opens a fresh file-backed SQLite database under t.TempDir()
// with foreign keys enforced and the schema applied. It is closed when the
// test ends.
func SetupSQLiteDB(t *testing.T) *database.Provider {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         filepath.Join(t.TempDir(), "orderdesk.db"),
		MaxOpenConns: 4,
		MaxIdleConns: 4,
		DialTimeout:  5 * time.Second,
		QueryTimeout: 10 * time.Second,
	}

	p, err := database.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to open sqlite test database: %v", err)
	}
	t.Cleanup(func() { p.Close() })

	if err := database.Migrate(context.Background(), p); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	return p
}

// SetupMySQLDB starts a throwaway MySQL server in a container and returns a
// migrated Provider for it. Skipped in -short mode or without Docker.
func SetupMySQLDB(t *testing.T) *database.Provider {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping mysql container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcmysql.Run(ctx, "mysql:8.0.36",
		tcmysql.WithDatabase("orderdesk_test"),
		tcmysql.WithUsername("orderdesk"),
		tcmysql.WithPassword("orderdesk"),
	)
	if err != nil {
		t.Skipf("mysql container not available: %v", err)
	}
	t.Cleanup(func() { container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to resolve container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "3306/tcp")
	if err != nil {
		t.Fatalf("failed to resolve container port: %v", err)
	}

	cfg := config.DatabaseConfig{
		Driver:          config.DriverMySQL,
		Host:            host,
		Port:            port.Int(),
		User:            "orderdesk",
		Password:        "orderdesk",
		Name:            "orderdesk_test",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Minute,
		DialTimeout:     10 * time.Second,
		QueryTimeout:    10 * time.Second,
	}

	p, err := database.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to connect to mysql container: %v", err)
	}
	t.Cleanup(func() { p.Close() })

	if err := database.Migrate(ctx, p); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	return p
}

// ExecWithoutForeignKeys runs one statement on a pinned SQLite connection
// with foreign key enforcement switched off, for seeding dangling references.
func ExecWithoutForeignKeys(t *testing.T, p *database.Provider, query string, args ...any) {
	t.Helper()

	err := p.WithConn(context.Background(), func(ctx context.Context, conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, `PRAGMA foreign_keys = OFF`); err != nil {
			return err
		}
		defer conn.ExecContext(ctx, `PRAGMA foreign_keys = ON`)

		_, err := conn.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		t.Fatalf("failed to exec without foreign keys: %v", err)
	}
}

// Count returns the number of rows in table matching where.
func Count(t *testing.T, p *database.Provider, table, where string, args ...any) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}

	var n int
	if err := p.DB().QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}

// MustExec runs a seed statement and returns its generated id.
func MustExec(t *testing.T, p *database.Provider, query string, args ...any) int64 {
	t.Helper()

	res, err := p.DB().Exec(query, args...)
	if err != nil {
		t.Fatalf("failed to exec %q: %v", query, err)
	}
	id, _ := res.LastInsertId()
	return id
}

// SeedItems inserts n items named item-1..item-n in one statement and returns
// their ids in ascending order.
func SeedItems(t *testing.T, p *database.Provider, n int) []int64 {
	t.Helper()

	MustExec(t, p, `
		INSERT INTO item (name, price)
		WITH RECURSIVE seq(n) AS (
			SELECT 1
			UNION ALL
			SELECT n + 1 FROM seq WHERE n < ?
		)
		SELECT 'item-' || n, 1 FROM seq`, n)

	rows, err := p.DB().Query(`SELECT id FROM item WHERE name LIKE 'item-%' ORDER BY id`)
	if err != nil {
		t.Fatalf("failed to read seeded items: %v", err)
	}
	defer rows.Close()

	ids := make([]int64, 0, n)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			t.Fatalf("failed to scan seeded item: %v", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("failed to read seeded items: %v", err)
	}
	return ids
}
