// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(ctx context.Context, connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS tasks (id TEXT PRIMARY KEY, position INT NOT NULL, title TEXT NOT NULL, description TEXT NOT NULL, category TEXT NOT NULL, priority TEXT NOT NULL CHECK(priority IN ('high','medium','low')), resiliency_gain INT NOT NULL, estimated_cost NUMERIC(10,2) NOT NULL, time_required TEXT NOT NULL, completed BOOLEAN NOT NULL DEFAULT FALSE);",
		"CREATE TABLE IF NOT EXISTS products (id TEXT PRIMARY KEY, position INT NOT NULL, name TEXT NOT NULL, description TEXT NOT NULL, image_url TEXT NOT NULL, price NUMERIC(10,2) NOT NULL CHECK(price >= 0), category TEXT NOT NULL, rating DOUBLE PRECISION NOT NULL, review_count INT NOT NULL, in_stock BOOLEAN NOT NULL, features TEXT[] NOT NULL, related_tasks TEXT[] NOT NULL);",
		"CREATE TABLE IF NOT EXISTS bundles (id TEXT PRIMARY KEY, position INT NOT NULL, name TEXT NOT NULL, description TEXT NOT NULL, category TEXT NOT NULL, original_price NUMERIC(10,2) NOT NULL, bundle_price NUMERIC(10,2) NOT NULL, savings NUMERIC(10,2) NOT NULL);",
		"CREATE TABLE IF NOT EXISTS bundle_products (bundle_id TEXT NOT NULL REFERENCES bundles(id) ON DELETE CASCADE, product_id TEXT NOT NULL REFERENCES products(id), position INT NOT NULL, PRIMARY KEY (bundle_id, product_id));",
		"CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY, username TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
