package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	defaultConnTimeout     = 5 * time.Second
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 25
	defaultConnMaxLifetime = 30 * time.Minute
	defaultConnMaxIdleTime = 5 * time.Minute
)

// Store оборачивает SQL-подключение к PostgreSQL.
type Store struct {
	db *sql.DB
}

// Open открывает подключение и проверяет доступность базы.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Store{db: db}, nil
}

// DB возвращает raw SQL DB, когда нужен низкоуровневый доступ.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping проверяет доступность подключения.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("postgres store is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	return s.db.PingContext(pingCtx)
}

// EnsureSchema создаёт таблицы журнала событий и проекции статуса.
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS fulfillment_events (
			seq BIGSERIAL PRIMARY KEY,
			event_id TEXT NOT NULL UNIQUE,
			order_id TEXT NOT NULL,
			status TEXT NOT NULL,
			event_type TEXT NOT NULL,
			payload TEXT NOT NULL DEFAULT '',
			occurred_at TIMESTAMPTZ NOT NULL,
			correlation_id TEXT NOT NULL,
			compensation_for TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS fulfillment_events_order_idx
			ON fulfillment_events (order_id, seq)`,
		`CREATE TABLE IF NOT EXISTS fulfillment_status (
			order_id TEXT PRIMARY KEY,
			status TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// SchemaStatus возвращает количество созданных таблиц сервиса и общее число
// событий в журнале (0, если таблицы ещё не созданы).
func (s *Store) SchemaStatus(ctx context.Context) (tables int, events int64, err error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT count(*) FROM information_schema.tables
		WHERE table_name IN ('fulfillment_events', 'fulfillment_status')`)
	if err := row.Scan(&tables); err != nil {
		return 0, 0, fmt.Errorf("schema status: %w", err)
	}

	if tables < 2 {
		return tables, 0, nil
	}

	row = s.db.QueryRowContext(ctx, `SELECT count(*) FROM fulfillment_events`)
	if err := row.Scan(&events); err != nil {
		return tables, 0, fmt.Errorf("schema status: %w", err)
	}
	return tables, events, nil
}

// Close закрывает подключение к БД.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
