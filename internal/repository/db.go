package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type scanner interface {
	Scan(dest ...any) error
}

// PoolSettings bound the shared connection pool.
type PoolSettings struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Open connects to postgres, applies pool settings, and waits for the
// database to accept connections (it may still be starting alongside us).
func Open(ctx context.Context, dsn string, pool PoolSettings) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("Open: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	for attempt := range 30 {
		if err = db.PingContext(ctx); err == nil {
			return db, nil
		}
		slog.Info("waiting for database", "attempt", attempt+1)
		select {
		case <-time.After(time.Second):
		case <-ctx.Done():
			db.Close()
			return nil, fmt.Errorf("Open: %w", ctx.Err())
		}
	}

	db.Close()
	return nil, fmt.Errorf("Open: gave up after 30 attempts: %w", err)
}
