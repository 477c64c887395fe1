package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/fluxshop/internal/db"
)

// PostgresStore keeps entries in the store_entries table.
// OpenPostgres applies the schema from internal/migrations.
type PostgresStore struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		q:    db.New(pool),
		pool: pool,
	}
}

func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("dsn is empty")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	if err := migrateUp(dsn); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrateUp: %w", err)
	}

	return NewPostgres(pool), nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, fmt.Errorf("key is empty")
	}

	value, err := s.q.GetEntry(ctx, key)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("q.GetEntry: %w", err)
	}

	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}
	if value == nil {
		value = []byte{}
	}

	err := s.q.UpsertEntry(ctx, db.UpsertEntryParams{
		Key:   key,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("q.UpsertEntry: %w", err)
	}

	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if _, err := s.q.DeleteEntry(ctx, key); err != nil {
		return fmt.Errorf("q.DeleteEntry: %w", err)
	}

	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
