package session_test

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/nikolayk812/fluxshop/internal/domain"
	"github.com/nikolayk812/fluxshop/internal/store"
)

type fakeProfileAPI struct {
	mu       sync.Mutex
	profiles map[string]domain.Profile
	gates    map[string]chan struct{}
	calls    []string
	started  chan string
}

func newFakeProfileAPI() *fakeProfileAPI {
	return &fakeProfileAPI{
		profiles: make(map[string]domain.Profile),
		gates:    make(map[string]chan struct{}),
		started:  make(chan string, 16),
	}
}

// hold makes lookups for token wait until the returned func is called.
func (f *fakeProfileAPI) hold(token string) func() {
	gate := make(chan struct{})

	f.mu.Lock()
	f.gates[token] = gate
	f.mu.Unlock()

	return func() { close(gate) }
}

func (f *fakeProfileAPI) Me(ctx context.Context, token string) (domain.Profile, error) {
	f.mu.Lock()
	f.calls = append(f.calls, token)
	gate := f.gates[token]
	profile, ok := f.profiles[token]
	f.mu.Unlock()

	f.started <- token

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return domain.Profile{}, ctx.Err()
		}
	}

	if !ok {
		return domain.Profile{}, &domain.RemoteError{StatusCode: http.StatusUnauthorized, Detail: "Not authenticated"}
	}
	return profile, nil
}

func (f *fakeProfileAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.calls)
}

var errStoreDown = errors.New("store is down")

type failingStore struct {
	*store.MemoryStore
}

func (failingStore) Set(context.Context, string, []byte) error {
	return errStoreDown
}

func (failingStore) Delete(context.Context, string) error {
	return errStoreDown
}

// pausingStore completes each Set and then waits for resume before returning.
type pausingStore struct {
	*store.MemoryStore
	written chan struct{}
	resume  chan struct{}
}

func newPausingStore() *pausingStore {
	return &pausingStore{
		MemoryStore: store.NewMemory(),
		written:     make(chan struct{}, 1),
		resume:      make(chan struct{}),
	}
}

func (s *pausingStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.MemoryStore.Set(ctx, key, value); err != nil {
		return err
	}

	s.written <- struct{}{}
	<-s.resume
	return nil
}
