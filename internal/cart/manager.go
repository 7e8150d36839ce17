package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/domain"
)

// Manager owns one Engine per session and applies the write-through
// persistence contract: every mutation updates memory first, then the Store.
// A Store write failure is logged and swallowed - the in-memory cart stays
// correct for the session and is never lost to a persistence hiccup.
//
// Mutations are serialized under a single lock, so cart operations for a
// session are applied in the order they arrive.
type Manager struct {
	mu      sync.Mutex
	engines map[string]*Engine
	store   Store
	logger  *zap.Logger
}

// NewManager creates a cart manager backed by store
func NewManager(store Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		engines: make(map[string]*Engine),
		store:   store,
		logger:  logger,
	}
}

// engine returns the session's engine, loading persisted lines on first
// access. A load failure degrades to an empty cart rather than an error.
func (m *Manager) engine(ctx context.Context, sessionID string) *Engine {
	if e, ok := m.engines[sessionID]; ok {
		return e
	}
	lines, err := m.store.Load(ctx, sessionID)
	if err != nil {
		m.logger.Warn("Failed to load persisted cart, starting empty",
			zap.String("session_id", sessionID),
			zap.Error(err))
		lines = nil
	}
	e := Restore(lines)
	m.engines[sessionID] = e
	return e
}

// persist writes the current snapshot through to the store. Failures are
// logged, never returned.
func (m *Manager) persist(ctx context.Context, sessionID string, e *Engine) {
	if err := m.store.Save(ctx, sessionID, e.Snapshot()); err != nil {
		m.logger.Warn("Failed to persist cart snapshot",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
}

// AddItem merges the product into the session's cart. Returns the updated
// snapshot and whether an existing line was merged (quantity bumped) rather
// than a new line created.
func (m *Manager) AddItem(ctx context.Context, sessionID string, product *domain.Product, size string, quantity int) ([]domain.CartLine, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.engine(ctx, sessionID)
	merged := e.AddItem(product, size, quantity)
	m.persist(ctx, sessionID, e)
	return e.Snapshot(), merged
}

// UpdateQuantity sets a line's quantity exactly; values below 1 are a no-op
func (m *Manager) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, size string, quantity int) ([]domain.CartLine, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.engine(ctx, sessionID)
	changed := e.UpdateQuantity(productID, size, quantity)
	if changed {
		m.persist(ctx, sessionID, e)
	}
	return e.Snapshot(), changed
}

// RemoveItem deletes a line; no-op if absent
func (m *Manager) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID, size string) ([]domain.CartLine, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.engine(ctx, sessionID)
	removed := e.RemoveItem(productID, size)
	if removed {
		m.persist(ctx, sessionID, e)
	}
	return e.Snapshot(), removed
}

// Clear empties the session's cart and its persisted copy
func (m *Manager) Clear(ctx context.Context, sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.engine(ctx, sessionID)
	e.Clear()
	if err := m.store.Delete(ctx, sessionID); err != nil {
		m.logger.Warn("Failed to delete persisted cart",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
}

// Snapshot returns a value copy of the session's cart lines
func (m *Manager) Snapshot(ctx context.Context, sessionID string) []domain.CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine(ctx, sessionID).Snapshot()
}

// TotalQuantity is the sum of line quantities for the cart badge
func (m *Manager) TotalQuantity(ctx context.Context, sessionID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine(ctx, sessionID).TotalQuantity()
}

// Subtotal is the sum of price x quantity across the session's lines
func (m *Manager) Subtotal(ctx context.Context, sessionID string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine(ctx, sessionID).Subtotal()
}

// Adopt folds one session's cart into another's, merging lines by
// (productID, size) and summing quantities, then discards the source cart.
// Wired to sign-in and sign-up so a cart built under an anonymous
// X-Cart-Session scope follows the shopper into the bearer-token scope
// instead of being stranded.
func (m *Manager) Adopt(ctx context.Context, fromID, toID string) {
	if fromID == "" || toID == "" || fromID == toID {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	src := m.engine(ctx, fromID)
	if src.Len() == 0 {
		return
	}
	dst := m.engine(ctx, toID)
	for _, line := range src.Snapshot() {
		dst.MergeLine(line)
	}
	m.persist(ctx, toID, dst)

	delete(m.engines, fromID)
	if err := m.store.Delete(ctx, fromID); err != nil {
		m.logger.Warn("Failed to delete adopted cart",
			zap.String("session_id", fromID),
			zap.Error(err))
	}
}

// Drop discards the in-memory engine and persisted snapshot for a session.
// Wired to sign-out so one identity's cart never leaks into the next.
func (m *Manager) Drop(ctx context.Context, sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.engines, sessionID)
	if err := m.store.Delete(ctx, sessionID); err != nil {
		m.logger.Warn("Failed to delete persisted cart on session drop",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
}
