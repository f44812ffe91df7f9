// Package db owns the Postgres connection pool, its reachability probe, and
// schema migrations.
package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// NewPool connects to Postgres and verifies the connection with a ping.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create connection pool")
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return pool, nil
}

const probeTimeout = 2 * time.Second

// ReachabilityProbe returns a probe that pings the pool with a short
// timeout. A nil pool (no database configured) always reports unreachable.
// The result is intentionally not cached: backend selection is a fresh
// per-call decision.
func ReachabilityProbe(pool *pgxpool.Pool) func(ctx context.Context) bool {
	return func(ctx context.Context) bool {
		if pool == nil {
			return false
		}

		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()

		return pool.Ping(probeCtx) == nil
	}
}
