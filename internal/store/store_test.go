package store_test

import (
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/fluxshop/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type storeSuite struct {
	suite.Suite

	open  func(t *testing.T) store.Backend
	store store.Backend
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, &storeSuite{
		open: func(*testing.T) store.Backend {
			return store.NewMemory()
		},
	})
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, &storeSuite{
		open: func(t *testing.T) store.Backend {
			s, err := store.OpenSQLite(t.Context(), filepath.Join(t.TempDir(), "state.db"))
			require.NoError(t, err)
			return s
		},
	})
}

// before all tests in the suite
func (suite *storeSuite) SetupSuite() {
	suite.store = suite.open(suite.T())
}

// after all tests in the suite
func (suite *storeSuite) TearDownSuite() {
	if suite.store != nil {
		suite.NoError(suite.store.Close())
	}
}

func (suite *storeSuite) TestSetGet() {
	tests := []struct {
		name      string
		key       string
		values    [][]byte
		want      string
		wantError string
	}{
		{
			name:   "set and get: ok",
			key:    gofakeit.UUID(),
			values: [][]byte{[]byte(gofakeit.Sentence(5))},
		},
		{
			name:   "overwrite replaces whole value: ok",
			key:    gofakeit.UUID(),
			values: [][]byte{[]byte(`[{"product_id":"a","quantity":3}]`), []byte(`[]`)},
			want:   `[]`,
		},
		{
			name:   "empty value: ok",
			key:    gofakeit.UUID(),
			values: [][]byte{{}},
			want:   "",
		},
		{
			name:      "set with empty key: error",
			key:       "",
			values:    [][]byte{[]byte("x")},
			wantError: "key is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			var err error
			for _, value := range tt.values {
				err = suite.store.Set(ctx, tt.key, value)
			}
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			got, found, err := suite.store.Get(ctx, tt.key)
			require.NoError(t, err)
			require.True(t, found)

			want := tt.want
			if len(tt.values) == 1 && len(tt.values[0]) > 0 {
				want = string(tt.values[0])
			}
			assert.Equal(t, want, string(got))
		})
	}
}

func (suite *storeSuite) TestGetMissing() {
	t := suite.T()

	got, found, err := suite.store.Get(t.Context(), gofakeit.UUID())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)

	_, _, err = suite.store.Get(t.Context(), "")
	require.EqualError(t, err, "key is empty")
}

func (suite *storeSuite) TestDelete() {
	tests := []struct {
		name      string
		key       string
		setup     bool
		wantError string
	}{
		{
			name:  "delete existing key: ok",
			key:   gofakeit.UUID(),
			setup: true,
		},
		{
			name: "delete absent key: ok",
			key:  gofakeit.UUID(),
		},
		{
			name:      "delete with empty key: error",
			key:       "",
			wantError: "key is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			if tt.setup {
				require.NoError(t, suite.store.Set(ctx, tt.key, []byte(gofakeit.Word())))
			}

			err := suite.store.Delete(ctx, tt.key)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			_, found, err := suite.store.Get(ctx, tt.key)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func (suite *storeSuite) TestReturnedValueIsDetached() {
	t := suite.T()
	ctx := t.Context()
	key := gofakeit.UUID()

	value := []byte("abc")
	require.NoError(t, suite.store.Set(ctx, key, value))
	value[0] = 'z'

	got, _, err := suite.store.Get(ctx, key)
	require.NoError(t, err)
	got[1] = 'z'

	again, _, err := suite.store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "nested", "state.db")

	first, err := store.OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, store.TokenKey, []byte("secret-token")))
	require.NoError(t, first.Close())

	second, err := store.OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer second.Close()

	got, found, err := second.Get(ctx, store.TokenKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "secret-token", string(got))
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name      string
		opts      store.Options
		wantError string
	}{
		{
			name: "memory driver: ok",
			opts: store.Options{Driver: store.DriverMemory},
		},
		{
			name: "sqlite driver: ok",
			opts: store.Options{Driver: store.DriverSQLite, Path: filepath.Join(t.TempDir(), "s.db")},
		},
		{
			name:      "sqlite without path: error",
			opts:      store.Options{Driver: store.DriverSQLite},
			wantError: "OpenSQLite: path is empty",
		},
		{
			name:      "postgres without dsn: error",
			opts:      store.Options{Driver: store.DriverPostgres},
			wantError: "OpenPostgres: dsn is empty",
		},
		{
			name:      "unknown driver: error",
			opts:      store.Options{Driver: "redis"},
			wantError: "driver[redis] is not supported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := store.Open(t.Context(), tt.opts)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			require.NoError(t, s.Close())
		})
	}
}
