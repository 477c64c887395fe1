// Package session owns the auth token and the profile derived from it.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/fluxshop/internal/domain"
	"github.com/nikolayk812/fluxshop/internal/port"
	"github.com/nikolayk812/fluxshop/internal/store"
	"go.uber.org/zap"
)

// Manager holds the token and the profile looked up for it.
// Every token change and every lookup bumps version; a lookup is applied only
// if the version it was issued under is still current when it completes.
type Manager struct {
	store  port.Store
	api    port.ProfileAPI
	logger *zap.Logger

	// writeMu is held across a store write and the in-memory update that follows it,
	// so the persisted token and the current token never disagree.
	writeMu sync.Mutex

	mu      sync.RWMutex
	token   string
	profile *domain.Profile
	version uint64
}

func New(s port.Store, api port.ProfileAPI, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Manager{
		store:  s,
		api:    api,
		logger: logger,
	}
}

// Init reads the persisted token and looks up its profile.
func (m *Manager) Init(ctx context.Context) error {
	m.writeMu.Lock()
	data, _, err := m.store.Get(ctx, store.TokenKey)
	if err != nil {
		m.writeMu.Unlock()
		return fmt.Errorf("store.Get: %w", err)
	}
	m.setToken(string(data))
	m.writeMu.Unlock()

	m.Refresh(ctx)

	return nil
}

func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.token
}

func (m *Manager) Profile() (domain.Profile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.profile == nil {
		return domain.Profile{}, false
	}
	return *m.profile, true
}

func (m *Manager) IsAdmin() bool {
	p, ok := m.Profile()
	return ok && p.IsAdmin
}

// Login persists token, makes it current and refreshes the profile.
// A failed write leaves the previous session in place.
func (m *Manager) Login(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("token is empty")
	}

	m.writeMu.Lock()
	if err := m.store.Set(ctx, store.TokenKey, []byte(token)); err != nil {
		m.writeMu.Unlock()
		return fmt.Errorf("store.Set: %w", err)
	}
	m.setToken(token)
	m.writeMu.Unlock()

	m.logger.Info("logged in")
	m.Refresh(ctx)

	return nil
}

// Logout forgets the token and the profile without any network call.
func (m *Manager) Logout(ctx context.Context) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if err := m.store.Delete(ctx, store.TokenKey); err != nil {
		return fmt.Errorf("store.Delete: %w", err)
	}

	m.setToken("")
	m.logger.Info("logged out")

	return nil
}

// Refresh looks up the profile for the current token. Any failure leaves no profile.
func (m *Manager) Refresh(ctx context.Context) {
	m.mu.Lock()
	m.version++
	token, version := m.token, m.version
	if token == "" {
		m.profile = nil
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	profile, err := m.api.Me(ctx, token)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.version != version {
		m.logger.Debug("stale profile lookup discarded",
			zap.Uint64("issued", version), zap.Uint64("current", m.version))
		return
	}

	if err != nil {
		m.logger.Warn("profile lookup failed", zap.Error(err))
		m.profile = nil
		return
	}

	m.profile = &profile
	m.logger.Debug("profile refreshed", zap.String("email", profile.Email), zap.Bool("admin", profile.IsAdmin))
}

// setToken switches to token. A different token invalidates the profile and any lookup in flight.
func (m *Manager) setToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token == m.token {
		return
	}

	m.version++
	m.profile = nil
	m.token = token
}
