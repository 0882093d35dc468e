package database

import (
	"context"
	"fmt"

	"github.com/Rana718/filldb/internal/database/mysql"
	"github.com/Rana718/filldb/internal/database/postgres"
	"github.com/Rana718/filldb/internal/database/sqlite"
)

func NewAdapter(provider string) DatabaseAdapter {
	switch provider {
	case "postgresql", "postgres":
		return postgres.New()
	case "mysql":
		return mysql.New()
	case "sqlite", "sqlite3":
		return sqlite.New()
	default:
		return postgres.New()
	}
}

// Open connects an adapter for provider and verifies the connection.
func Open(ctx context.Context, provider, url string) (DatabaseAdapter, error) {
	adapter := NewAdapter(provider)
	if err := adapter.Connect(ctx, url); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := adapter.Ping(ctx); err != nil {
		adapter.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return adapter, nil
}
