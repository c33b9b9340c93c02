package visits

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps counters in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at dsn and applies
// migrations. ":memory:" is allowed.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = "portfolio.db"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := migrate(ctx, goose.DialectSQLite3, db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Read(ctx context.Context, key string) (Counter, bool, error) {
	var c Counter
	err := s.db.QueryRowContext(ctx,
		`SELECT count, last_updated FROM visit_counters WHERE counter_key = ?`, key,
	).Scan(&c.Count, &c.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return Counter{}, false, nil
	}
	if err != nil {
		return Counter{}, false, fmt.Errorf("read counter %s: %w", key, err)
	}
	return c, true, nil
}

func (s *SQLiteStore) Increment(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visit_counters (counter_key, count, last_updated)
		VALUES (?, 1, ?)
		ON CONFLICT (counter_key) DO UPDATE
		SET count = visit_counters.count + 1, last_updated = excluded.last_updated
	`, key, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("increment counter %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
