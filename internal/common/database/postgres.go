// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dogmatch-workers/internal/common/config"

	_ "github.com/lib/pq"
)

// PostgresClient wraps the SQL database connection
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens a lib/pq pool. The connection is not verified until Ping.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

// NewPostgresFromDB wraps an existing pool, e.g. a sqlmock connection.
func NewPostgresFromDB(db *sql.DB) *PostgresClient {
	return &PostgresClient{DB: db}
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	return nil
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// Schema creates the tables the catalog and notification workers read.
const Schema = `
CREATE TABLE IF NOT EXISTS dog_breeds (
	id                  TEXT PRIMARY KEY,
	name                TEXT NOT NULL UNIQUE,
	size                TEXT NOT NULL,
	exercise_needs      DOUBLE PRECISION NOT NULL,
	good_with_children  BOOLEAN NOT NULL,
	intelligence        INTEGER NOT NULL,
	training_difficulty INTEGER NOT NULL,
	shedding            TEXT NOT NULL,
	health_risk         TEXT NOT NULL,
	breed_group         TEXT NOT NULL,
	friendliness        INTEGER NOT NULL,
	life_expectancy     INTEGER,
	average_weight      DOUBLE PRECISION,
	description         TEXT NOT NULL DEFAULT '',
	temperament         TEXT[] NOT NULL DEFAULT '{}',
	care                TEXT[] NOT NULL DEFAULT '{}',
	history             TEXT NOT NULL DEFAULT '',
	images              TEXT[] NOT NULL DEFAULT '{}',
	created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS match_recipients (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT,
	phone      TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Migrate applies Schema. Statements are idempotent.
func (c *PostgresClient) Migrate(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("postgres migrate failed: %w", err)
	}
	return nil
}
