package store

import (
	"context"
	"database/sql"
	"fmt"

	"wisefido-carelog/internal/config"

	"github.com/lib/pq"
)

// OpenPostgres 创建PostgreSQL数据库连接
func OpenPostgres(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 设置连接池参数
	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if cfg.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.MaxIdle)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// PostgresStore 基于键值表的 Store 实现
//
// 表结构：
//
//	CREATE TABLE carelog_kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)
type PostgresStore struct {
	db    *sql.DB
	table string
}

// NewPostgresStore 创建 PostgresStore，table 会按标识符转义
func NewPostgresStore(db *sql.DB, table string) *PostgresStore {
	return &PostgresStore{db: db, table: pq.QuoteIdentifier(table)}
}

// EnsureTable 表不存在时创建
func (p *PostgresStore) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (key TEXT PRIMARY KEY, value TEXT NOT NULL)`, p.table)
	if _, err := p.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create kv table: %w", err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, p.table)

	var val string
	err := p.db.QueryRowContext(ctx, query, key).Scan(&val)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrMiss
		}
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return val, nil
}

func (p *PostgresStore) Set(ctx context.Context, key string, value string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, p.table)
	if _, err := p.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (p *PostgresStore) Keys(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT key FROM %s ORDER BY key`, p.table)

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate keys: %w", err)
	}
	return keys, nil
}

// Close 关闭数据库连接
func (p *PostgresStore) Close() error {
	return p.db.Close()
}
