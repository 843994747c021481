package database

import (
	"context"
	"database/sql"
	"fmt"

	"orderdesk/internal/config"
)

// Statements are ordered so that referenced tables exist first.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS customer (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		phone_number VARCHAR(50) NOT NULL DEFAULT '',
		address VARCHAR(255) NOT NULL DEFAULT '',
		INDEX idx_customer_name (name)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS deliveryman (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		phone_number VARCHAR(50) NOT NULL DEFAULT '',
		INDEX idx_deliveryman_name (name)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS item (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		CONSTRAINT chk_item_price CHECK (price >= 0),
		INDEX idx_item_name (name)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		total_price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		date DATE NOT NULL,
		customer_id BIGINT NOT NULL,
		deliveryman_id BIGINT NULL,
		CONSTRAINT chk_orders_total CHECK (total_price >= 0),
		CONSTRAINT fk_orders_customer FOREIGN KEY (customer_id) REFERENCES customer(id),
		CONSTRAINT fk_orders_deliveryman FOREIGN KEY (deliveryman_id) REFERENCES deliveryman(id),
		INDEX idx_orders_customer (customer_id),
		INDEX idx_orders_deliveryman (deliveryman_id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS order_item (
		order_id BIGINT NOT NULL,
		item_id BIGINT NOT NULL,
		CONSTRAINT fk_order_item_order FOREIGN KEY (order_id) REFERENCES orders(id),
		CONSTRAINT fk_order_item_item FOREIGN KEY (item_id) REFERENCES item(id),
		INDEX idx_order_item_order (order_id),
		INDEX idx_order_item_item (item_id)
	) ENGINE=InnoDB`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS customer (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		phone_number TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS deliveryman (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		phone_number TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS item (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		price NUMERIC NOT NULL CHECK (price >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		total_price NUMERIC NOT NULL DEFAULT 0 CHECK (total_price >= 0),
		date DATE NOT NULL,
		customer_id INTEGER NOT NULL REFERENCES customer(id),
		deliveryman_id INTEGER NULL REFERENCES deliveryman(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders (customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_deliveryman ON orders (deliveryman_id)`,
	`CREATE TABLE IF NOT EXISTS order_item (
		order_id INTEGER NOT NULL REFERENCES orders(id),
		item_id INTEGER NOT NULL REFERENCES item(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_item_order ON order_item (order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_item_item ON order_item (item_id)`,
}

// Schema returns the DDL for the given driver.
func Schema(driver string) ([]string, error) {
	switch driver {
	case config.DriverMySQL:
		return mysqlSchema, nil
	case config.DriverSQLite:
		return sqliteSchema, nil
	default:
		return nil, fmt.Errorf("no schema for driver %q", driver)
	}
}

// Migrate creates any missing table on one pinned connection. Statements are
// idempotent, so running it against an initialized store is a no-op.
func Migrate(ctx context.Context, p *Provider) error {
	stmts, err := Schema(p.Driver())
	if err != nil {
		return err
	}

	return p.WithConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		for i, stmt := range stmts {
			if _, err := conn.ExecContext(ctx, stmt); err != nil {
				return Classify(fmt.Sprintf("applying schema statement %d", i+1), err)
			}
		}
		return nil
	})
}
