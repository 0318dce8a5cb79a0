package database

import (
	"context"
	"sheetform/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connection opens a pool for url and exits the process when it cannot.
func Connection(ctx context.Context, url string) *pgxpool.Pool {
	if url == "" {
		logger.Fatal("database url not set", nil)
	}

	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		logger.Fatal("Unable to parse database url", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Fatal("Unable to connect to database", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Unable to reach database", err)
	}

	logger.Info("Connected to PostgreSQL!")
	return pool
}
