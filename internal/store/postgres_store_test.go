package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/nikolayk812/fluxshop/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a postgres container")
	}

	var container *postgres.PostgresContainer

	suite.Run(t, &storeSuite{
		open: func(t *testing.T) store.Backend {
			ctx := t.Context()

			var (
				connStr string
				err     error
			)
			container, connStr, err = startPostgres(ctx)
			require.NoError(t, err)

			s, err := store.OpenPostgres(ctx, connStr)
			require.NoError(t, err)
			return s
		},
	})

	if container != nil {
		require.NoError(t, testcontainers.TerminateContainer(container))
	}
}

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func TestOpenPostgres_AppliesSchemaOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a postgres container")
	}
	ctx := t.Context()

	container, connStr, err := startPostgres(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, testcontainers.TerminateContainer(container))
	}()

	first, err := store.OpenPostgres(ctx, connStr)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, store.TokenKey, []byte("tok")))
	require.NoError(t, first.Close())

	// schema already current: reopening must neither fail nor reset data
	second, err := store.OpenPostgres(ctx, connStr)
	require.NoError(t, err)
	defer second.Close()

	value, found, err := second.Get(ctx, store.TokenKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "tok", string(value))
}
