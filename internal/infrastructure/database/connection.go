package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"orderdesk/internal/config"
	apperrors "orderdesk/internal/errors"
)

// MaxParamsPerQuery caps the bind variables a repository puts in one
// statement. Both drivers accept far more; lists longer than this are split.
const MaxParamsPerQuery = 500

// Provider hands out database access for one logical operation at a time.
// The underlying *sql.DB is a pool: every statement issued through DB()
// acquires a connection and releases it when the statement (or its rows)
// completes. WithConn pins a single connection for multi-statement work.
type Provider struct {
	db           *sql.DB
	driver       string
	queryTimeout time.Duration
}

func NewProvider(db *sql.DB, driver string, queryTimeout time.Duration) *Provider {
	return &Provider{db: db, driver: driver, queryTimeout: queryTimeout}
}

// Open builds the pool from configuration and verifies the store is
// reachable. An unreachable store yields a ConnectionError and no Provider.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Provider, error) {
	db, err := NewConnection(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewProvider(db, cfg.Driver, cfg.QueryTimeout), nil
}

func NewConnection(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	driverName, dsn, err := dataSource(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, apperrors.NewConnectionError("opening database", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, apperrors.NewConnectionError("pinging database", err)
	}

	return db, nil
}

func dataSource(cfg config.DatabaseConfig) (string, string, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
		mc.DBName = cfg.Name
		mc.ParseTime = true
		// UPDATE reports matched rows, so a full overwrite with identical
		// values still counts as one affected row.
		mc.ClientFoundRows = true
		mc.Timeout = cfg.DialTimeout
		mc.ReadTimeout = cfg.QueryTimeout
		mc.WriteTimeout = cfg.QueryTimeout
		return "mysql", mc.FormatDSN(), nil
	case config.DriverSQLite:
		return "sqlite", SQLiteDSN(cfg.Path), nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// SQLiteDSN enables foreign keys on every pooled connection so the schema's
// references are enforced the same way MySQL enforces them.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func (p *Provider) DB() *sql.DB {
	return p.db
}

func (p *Provider) Driver() string {
	return p.driver
}

// Scope bounds one operation by the configured query timeout.
func (p *Provider) Scope(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.queryTimeout)
}

// WithConn acquires one connection, runs fn and releases the connection on
// every exit path.
func (p *Provider) WithConn(ctx context.Context, fn func(ctx context.Context, conn *sql.Conn) error) error {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return Classify("acquiring connection", err)
	}
	defer conn.Close()

	return fn(ctx, conn)
}

func (p *Provider) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return p.db.BeginTx(ctx, opts)
}

func (p *Provider) Ping(ctx context.Context) error {
	return p.WithConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		if err := conn.PingContext(ctx); err != nil {
			return apperrors.NewConnectionError("pinging database", err)
		}
		return nil
	})
}

func (p *Provider) Close() error {
	return p.db.Close()
}
