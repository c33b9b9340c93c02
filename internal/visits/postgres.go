package visits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresStore keeps counters in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to the database URL and applies migrations.
func OpenPostgres(ctx context.Context, url string) (*PostgresStore, error) {
	if url == "" {
		return nil, errors.New("postgres url cannot be empty")
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	err = migrate(ctx, goose.DialectPostgres, db)
	db.Close()
	if err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Read(ctx context.Context, key string) (Counter, bool, error) {
	var c Counter
	err := s.pool.QueryRow(ctx,
		`SELECT count, last_updated FROM visit_counters WHERE counter_key = $1`, key,
	).Scan(&c.Count, &c.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return Counter{}, false, nil
	}
	if err != nil {
		return Counter{}, false, fmt.Errorf("read counter %s: %w", key, err)
	}
	return c, true, nil
}

func (s *PostgresStore) Increment(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO visit_counters (counter_key, count, last_updated)
		VALUES ($1, 1, $2)
		ON CONFLICT (counter_key) DO UPDATE
		SET count = visit_counters.count + 1, last_updated = excluded.last_updated
	`, key, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("increment counter %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
