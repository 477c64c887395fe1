package cart_test

import (
	"context"
	"errors"

	"github.com/nikolayk812/fluxshop/internal/store"
)

var errStoreDown = errors.New("store is down")

// flakyStore wraps a memory store and fails reads or writes on demand.
type flakyStore struct {
	*store.MemoryStore
	failGet bool
	failSet bool
	sets    int
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: store.NewMemory()}
}

func (s *flakyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.failGet {
		return nil, false, errStoreDown
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failSet {
		return errStoreDown
	}
	s.sets++
	return s.MemoryStore.Set(ctx, key, value)
}
