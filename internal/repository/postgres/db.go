package postgresrepo

import (
	"context"
	"fmt"
	"freightzone-backend/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPgxPool creates a new pgx connection pool
func NewPgxPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MinConns = cfg.DBMinConns
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

// Both config tables hold a single row pinned to id 1.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS freight_config (
		id SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
		local_cost NUMERIC(10,2) NOT NULL DEFAULT 0,
		north_island_cost NUMERIC(10,2) NOT NULL DEFAULT 0,
		south_island_cost NUMERIC(10,2) NOT NULL DEFAULT 0,
		north_america_cost NUMERIC(10,2) NOT NULL DEFAULT 0,
		asia_cost NUMERIC(10,2) NOT NULL DEFAULT 0,
		europe_cost NUMERIC(10,2) NOT NULL DEFAULT 0,
		africa_cost NUMERIC(10,2) NOT NULL DEFAULT 0,
		latin_america_cost NUMERIC(10,2) NOT NULL DEFAULT 0,
		is_free_freight_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		threshold_local NUMERIC(10,2) NOT NULL DEFAULT 0,
		threshold_national NUMERIC(10,2) NOT NULL DEFAULT 0,
		threshold_international NUMERIC(10,2) NOT NULL DEFAULT 0,
		updated_by TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS local_zone_config (
		id SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
		city TEXT NOT NULL,
		region TEXT NOT NULL,
		postal_code_prefixes TEXT[] NOT NULL DEFAULT '{}',
		suburbs TEXT[] NOT NULL DEFAULT '{}',
		updated_by TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates the config tables when they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
