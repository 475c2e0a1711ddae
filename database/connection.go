package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const (
	defaultMaxConns          = 8
	defaultHealthCheckPeriod = time.Minute
	connectTimeout           = 10 * time.Second
)

// DB is the ladder's PostgreSQL connection pool
type DB struct {
	*pgxpool.Pool
}

// NewConnection opens and verifies a pool for databaseURL. Pool settings in
// the URL (pool_max_conns and friends) take precedence over the defaults.
func NewConnection(ctx context.Context, databaseURL string) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	if !strings.Contains(databaseURL, "pool_max_conns") {
		poolConfig.MaxConns = defaultMaxConns
	}
	poolConfig.HealthCheckPeriod = defaultHealthCheckPeriod

	// Match history timestamps are compared across connections
	poolConfig.ConnConfig.RuntimeParams["timezone"] = "UTC"
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "ladder"

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.WithFields(log.Fields{
		"host":     poolConfig.ConnConfig.Host,
		"database": poolConfig.ConnConfig.Database,
		"maxConns": poolConfig.MaxConns,
	}).Debug("Database pool ready")

	return &DB{Pool: pool}, nil
}

// Close closes the database connection pool
func (db *DB) Close() {
	db.Pool.Close()
}
