package database

import (
	"context"

	"github.com/Rana718/filldb/internal/database/common"
)

// DatabaseAdapter is the persistence sink of a seed run. Inserts issued
// between Begin and Commit belong to one transaction.
type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	// Transaction control
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// Insert writes one row. When returning names a column, its generated
	// value is returned; otherwise the result is 0.
	Insert(ctx context.Context, table string, row common.Row, returning string) (int64, error)

	// Maintenance
	TruncateTables(ctx context.Context, tables []string) error
	GetAllTableRowCounts(ctx context.Context, tables []string) (map[string]int, error)
}
