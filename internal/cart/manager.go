// Package cart owns the shopping cart: an ordered list of lines persisted on every change.
package cart

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/nikolayk812/fluxshop/internal/domain"
	"github.com/nikolayk812/fluxshop/internal/port"
	"github.com/nikolayk812/fluxshop/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Manager struct {
	store  port.Store
	logger *zap.Logger

	// mu is held across the store write so mutations are observed in call order.
	mu    sync.RWMutex
	lines []domain.CartLine

	// loadErr is the last failed read of the persisted cart; nil once a read succeeds.
	loadErr error
}

func New(s port.Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Manager{
		store:  s,
		logger: logger,
		lines:  []domain.CartLine{},
	}
}

// Init loads the persisted cart. Missing or malformed data leaves the cart empty.
// If the store cannot be read, mutations retry the read and fail until it succeeds,
// so a cart that is only temporarily unreadable is never overwritten.
func (m *Manager) Init(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.load(ctx); err != nil {
		m.logger.Warn("cart not loaded, starting empty", zap.Error(err))
	}
}

// load reads the persisted cart into m.lines. m.mu must be held.
func (m *Manager) load(ctx context.Context) error {
	m.lines = []domain.CartLine{}

	data, found, err := m.store.Get(ctx, store.CartKey)
	if err != nil {
		m.loadErr = err
		return fmt.Errorf("store.Get: %w", err)
	}
	m.loadErr = nil

	if !found {
		return nil
	}

	lines, err := decodeStrict(data)
	if err != nil {
		m.logger.Warn("persisted cart is malformed, starting empty", zap.Error(err))
		return nil
	}

	m.lines = lines
	m.logger.Debug("cart loaded", zap.Int("lines", len(lines)))
	return nil
}

func (m *Manager) Lines() []domain.CartLine {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.lines)
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.lines)
}

func (m *Manager) Total() decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return domain.CartTotal(m.lines)
}

// Add increments the quantity of an existing line in place, or appends a new line.
func (m *Manager) Add(ctx context.Context, p domain.Product) error {
	if p.ID == "" {
		return fmt.Errorf("productID is empty")
	}

	return m.mutate(ctx, "add", func(lines []domain.CartLine) []domain.CartLine {
		idx := indexOf(lines, p.ID)
		if idx < 0 {
			return append(lines, domain.NewCartLine(p))
		}
		lines[idx].Quantity++
		return lines
	})
}

// Remove is a no-op for an absent product.
func (m *Manager) Remove(ctx context.Context, productID string) error {
	return m.mutate(ctx, "remove", func(lines []domain.CartLine) []domain.CartLine {
		return slices.DeleteFunc(lines, func(l domain.CartLine) bool {
			return l.ProductID == productID
		})
	})
}

// SetQuantity sets max(1, q) on the matching line; no-op for an absent product.
func (m *Manager) SetQuantity(ctx context.Context, productID string, q int) error {
	return m.mutate(ctx, "set_quantity", func(lines []domain.CartLine) []domain.CartLine {
		if idx := indexOf(lines, productID); idx >= 0 {
			lines[idx].Quantity = max(1, q)
		}
		return lines
	})
}

func (m *Manager) Clear(ctx context.Context) error {
	return m.mutate(ctx, "clear", func([]domain.CartLine) []domain.CartLine {
		return []domain.CartLine{}
	})
}

// mutate applies fn to a private copy, persists the result and only then publishes it.
func (m *Manager) mutate(ctx context.Context, op string, fn func([]domain.CartLine) []domain.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loadErr != nil {
		if err := m.load(ctx); err != nil {
			return fmt.Errorf("cart not loaded: %w", err)
		}
	}

	next := fn(slices.Clone(m.lines))

	data, err := Encode(next)
	if err != nil {
		return fmt.Errorf("Encode: %w", err)
	}

	if err := m.store.Set(ctx, store.CartKey, data); err != nil {
		m.logger.Warn("cart not persisted, change dropped", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("store.Set: %w", err)
	}

	m.lines = next
	m.logger.Debug("cart changed", zap.String("op", op), zap.Int("lines", len(next)))
	return nil
}

func indexOf(lines []domain.CartLine, productID string) int {
	return slices.IndexFunc(lines, func(l domain.CartLine) bool {
		return l.ProductID == productID
	})
}
