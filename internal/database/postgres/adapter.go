package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/filldb/internal/database/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// querier is satisfied by both the pool and an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Adapter struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
	qb   squirrel.StatementBuilderType
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (p *Adapter) Connect(ctx context.Context, url string) error {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return fmt.Errorf("failed to parse connection URL: %w", err)
	}

	config.MaxConns = 2
	config.MinConns = 0
	config.MaxConnLifetime = 15 * time.Minute
	config.MaxConnIdleTime = 3 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	p.pool = pool
	return nil
}

func (p *Adapter) Close() error {
	if p.tx != nil {
		p.tx.Rollback(context.Background())
		p.tx = nil
	}
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *Adapter) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Adapter) conn() querier {
	if p.tx != nil {
		return p.tx
	}
	return p.pool
}

func (p *Adapter) Begin(ctx context.Context) error {
	if p.tx != nil {
		return common.ErrTransactionInProgress
	}
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	p.tx = tx
	return nil
}

func (p *Adapter) Commit(ctx context.Context) error {
	if p.tx == nil {
		return common.ErrNoTransaction
	}
	err := p.tx.Commit(ctx)
	p.tx = nil
	return err
}

func (p *Adapter) Rollback(ctx context.Context) error {
	if p.tx == nil {
		return common.ErrNoTransaction
	}
	err := p.tx.Rollback(ctx)
	p.tx = nil
	return err
}

// Insert passes string lists straight to pgx, which encodes them as text[].
func (p *Adapter) Insert(ctx context.Context, table string, row common.Row, returning string) (int64, error) {
	if err := common.ValidateRow(table, row); err != nil {
		return 0, err
	}

	builder := p.qb.Insert(pq.QuoteIdentifier(table)).SetMap(row)
	if returning != "" {
		if !common.IsValidIdentifier(returning) {
			return 0, fmt.Errorf("invalid returning column: %s", returning)
		}
		builder = builder.Suffix("RETURNING " + pq.QuoteIdentifier(returning))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert into %s: %w", table, err)
	}

	if returning == "" {
		if _, err := p.conn().Exec(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
		}
		return 0, nil
	}

	var id int64
	if err := p.conn().QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return id, nil
}

func (p *Adapter) TruncateTables(ctx context.Context, tables []string) error {
	if len(tables) == 0 {
		return nil
	}
	if err := common.ValidateTables(tables); err != nil {
		return err
	}

	quoted := make([]string, len(tables))
	for i, table := range tables {
		quoted[i] = pq.QuoteIdentifier(table)
	}

	query := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(quoted, ", "))
	if _, err := p.conn().Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

func (p *Adapter) GetAllTableRowCounts(ctx context.Context, tables []string) (map[string]int, error) {
	if len(tables) == 0 {
		return make(map[string]int), nil
	}
	if err := common.ValidateTables(tables); err != nil {
		return nil, err
	}

	rows, err := p.conn().Query(ctx, common.RowCountQuery(tables, pq.QuoteIdentifier))
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
