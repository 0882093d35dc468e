package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/filldb/internal/database/common"
	_ "github.com/mattn/go-sqlite3"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type Adapter struct {
	db *sql.DB
	tx *sql.Tx
	qb squirrel.StatementBuilderType
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	dbPath := strings.TrimPrefix(url, "sqlite://")
	if !strings.Contains(dbPath, "?") {
		dbPath += "?_foreign_keys=on&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	// One writer; also keeps an in-memory database alive for the whole run.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s.db = db
	return nil
}

func (s *Adapter) Close() error {
	if s.tx != nil {
		s.tx.Rollback()
		s.tx = nil
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Adapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Adapter) conn() querier {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

func quote(name string) string {
	return `"` + name + `"`
}

func (s *Adapter) Begin(ctx context.Context) error {
	if s.tx != nil {
		return common.ErrTransactionInProgress
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	s.tx = tx
	return nil
}

func (s *Adapter) Commit(ctx context.Context) error {
	if s.tx == nil {
		return common.ErrNoTransaction
	}
	err := s.tx.Commit()
	s.tx = nil
	return err
}

func (s *Adapter) Rollback(ctx context.Context) error {
	if s.tx == nil {
		return common.ErrNoTransaction
	}
	err := s.tx.Rollback()
	s.tx = nil
	return err
}

func (s *Adapter) Insert(ctx context.Context, table string, row common.Row, returning string) (int64, error) {
	if err := common.ValidateRow(table, row); err != nil {
		return 0, err
	}
	row, err := common.EncodeLists(row)
	if err != nil {
		return 0, err
	}

	query, args, err := s.qb.Insert(quote(table)).SetMap(row).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert into %s: %w", table, err)
	}

	res, err := s.conn().ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	if returning == "" {
		return 0, nil
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read generated %s of %s: %w", returning, table, err)
	}
	return id, nil
}

// TruncateTables deletes every row and resets AUTOINCREMENT counters. Tables
// are cleared in the given order, so dependents must come first.
func (s *Adapter) TruncateTables(ctx context.Context, tables []string) error {
	if err := common.ValidateTables(tables); err != nil {
		return err
	}

	for _, table := range tables {
		if _, err := s.conn().ExecContext(ctx, "DELETE FROM "+quote(table)); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
		// sqlite_sequence only exists once an AUTOINCREMENT table was written.
		s.conn().ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = ?", table)
	}
	return nil
}

func (s *Adapter) GetAllTableRowCounts(ctx context.Context, tables []string) (map[string]int, error) {
	if len(tables) == 0 {
		return make(map[string]int), nil
	}
	if err := common.ValidateTables(tables); err != nil {
		return nil, err
	}

	rows, err := s.conn().QueryContext(ctx, common.RowCountQuery(tables, quote))
	if err != nil {
		return nil, fmt.Errorf("failed to batch count table rows: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int, len(tables))
	for rows.Next() {
		var tableName string
		var count int
		if err := rows.Scan(&tableName, &count); err != nil {
			return nil, fmt.Errorf("failed to scan batch count result: %w", err)
		}
		result[tableName] = count
	}

	return result, rows.Err()
}
