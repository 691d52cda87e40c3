// pkg/storefront/cart/manager.go

// Package cart implements the client-side shopping cart: an in-memory
// line-item list that persists to a local store for guests and mirrors
// the server-held cart for authenticated users. The manager reconciles
// the two across login and logout.
package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// LineItem is one line of the client cart. Name, price and image are
// snapshots taken when the product was first added.
type LineItem struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image"`
	Price     int64  `json:"price"`
}

// LineTotal returns the line's quantity-extended price
func (li LineItem) LineTotal() int64 {
	return li.Price * int64(li.Quantity)
}

// Backend is the server-held cart for the authenticated user. SetItem
// SETS the quantity for a product rather than adding to it; every
// mutation returns the authoritative server cart.
type Backend interface {
	FetchCart(ctx context.Context) ([]LineItem, error)
	SetItem(ctx context.Context, item LineItem) ([]LineItem, error)
	RemoveItem(ctx context.Context, productID uint) ([]LineItem, error)
	ClearCart(ctx context.Context) error
}

// Store persists the guest cart between sessions
type Store interface {
	Load() ([]LineItem, error)
	Save(items []LineItem) error
	Clear() error
}

// Notifier receives user-facing messages about cart activity
type Notifier interface {
	Info(message string)
	Error(message string)
}

// NopNotifier discards all notifications
type NopNotifier struct{}

func (NopNotifier) Info(string)  {}
func (NopNotifier) Error(string) {}

// Manager owns the client cart state. All mutations run under a single
// lock, so overlapping calls from multiple goroutines apply one at a
// time. In guest mode every mutation is written through to the store;
// in authenticated mode every mutation is pushed to the backend, and a
// failed push triggers a re-fetch of the authoritative server cart.
type Manager struct {
	mu            sync.Mutex
	items         []LineItem
	authenticated bool

	backend  Backend
	store    Store
	notifier Notifier
	logger   *logrus.Logger
}

// NewManager creates a cart manager in guest mode, hydrated from the
// store. A corrupt or missing store yields an empty cart, not an error.
func NewManager(backend Backend, store Store, notifier Notifier, logger *logrus.Logger) *Manager {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = logrus.New()
	}

	m := &Manager{
		backend:  backend,
		store:    store,
		notifier: notifier,
		logger:   logger,
	}

	if store != nil {
		items, err := store.Load()
		if err != nil {
			logger.WithError(err).Warn("Failed to load stored cart; starting empty")
		} else {
			m.items = items
		}
	}

	return m
}

// AddItem adds the item's quantity to any existing line for the same
// product, so repeated adds accumulate. The first add snapshots the
// item's name, price and image.
func (m *Manager) AddItem(ctx context.Context, item LineItem) error {
	if item.ProductID == 0 {
		return fmt.Errorf("product id is required")
	}
	if item.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(item.ProductID)
	if idx >= 0 {
		// Existing line keeps its original snapshot
		m.items[idx].Quantity += item.Quantity
		item = m.items[idx]
	} else {
		m.items = append(m.items, item)
	}

	if err := m.pushLine(ctx, item); err != nil {
		return err
	}

	if idx >= 0 {
		m.notifier.Info(fmt.Sprintf("Updated %s quantity in cart", item.Name))
	} else {
		m.notifier.Info(fmt.Sprintf("Added %s to cart", item.Name))
	}
	return nil
}

// UpdateQuantity sets the absolute quantity for a product. A quantity
// below 1 removes the line. Updating a product that is not in the cart
// is a no-op.
func (m *Manager) UpdateQuantity(ctx context.Context, productID uint, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(productID)
	if idx < 0 {
		return nil
	}

	if quantity < 1 {
		return m.removeLine(ctx, idx)
	}

	m.items[idx].Quantity = quantity
	return m.pushLine(ctx, m.items[idx])
}

// RemoveItem removes a product's line. Removing an absent product
// succeeds silently.
func (m *Manager) RemoveItem(ctx context.Context, productID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(productID)
	if idx < 0 {
		return nil
	}

	name := m.items[idx].Name
	if err := m.removeLine(ctx, idx); err != nil {
		return err
	}

	m.notifier.Info(fmt.Sprintf("Removed %s from cart", name))
	return nil
}

// Clear empties the cart. In guest mode the stored copy is cleared as
// well; in authenticated mode the stored guest cart is left alone so a
// later logout restores it.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = nil

	if !m.authenticated {
		if m.store != nil {
			if err := m.store.Clear(); err != nil {
				m.logger.WithError(err).Warn("Failed to clear stored cart")
			}
		}
		return nil
	}

	if m.backend == nil {
		return nil
	}
	if err := m.backend.ClearCart(ctx); err != nil {
		m.notifier.Error("Failed to clear cart")
		m.refetch(ctx)
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Login switches to authenticated mode and replaces the in-memory cart
// with the server-held cart. Guest items are discarded from memory but
// the stored guest copy is untouched, so logout can restore it.
func (m *Manager) Login(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.authenticated = true

	if m.backend == nil {
		m.items = nil
		return nil
	}

	items, err := m.backend.FetchCart(ctx)
	if err != nil {
		m.items = nil
		m.notifier.Error("Failed to load your cart")
		return fmt.Errorf("failed to fetch cart: %w", err)
	}

	m.items = items
	return nil
}

// Logout switches back to guest mode and restores the stored guest
// cart, whatever happened during the authenticated session.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.authenticated = false
	m.items = nil

	if m.store == nil {
		return
	}

	items, err := m.store.Load()
	if err != nil {
		m.logger.WithError(err).Warn("Failed to restore stored cart")
		return
	}
	m.items = items
}

// IsAuthenticated reports whether the manager is in authenticated mode
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticated
}

// Items returns a copy of the current cart lines
func (m *Manager) Items() []LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]LineItem, len(m.items))
	copy(items, m.items)
	return items
}

// TotalItems returns the sum of quantities across all lines
func (m *Manager) TotalItems() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, item := range m.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the quantity-extended sum across all lines
func (m *Manager) TotalPrice() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	var total int64
	for _, item := range m.items {
		total += item.LineTotal()
	}
	return total
}

// indexOf returns the line index for a product, or -1. Callers hold mu.
func (m *Manager) indexOf(productID uint) int {
	for i, item := range m.items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// removeLine drops the line at idx and propagates the removal. Callers
// hold mu.
func (m *Manager) removeLine(ctx context.Context, idx int) error {
	productID := m.items[idx].ProductID
	m.items = append(m.items[:idx], m.items[idx+1:]...)

	if !m.authenticated {
		m.persistGuest()
		return nil
	}

	if m.backend == nil {
		return nil
	}
	items, err := m.backend.RemoveItem(ctx, productID)
	if err != nil {
		m.notifier.Error("Failed to update cart")
		m.refetch(ctx)
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	m.items = items
	return nil
}

// pushLine propagates one changed line. Callers hold mu.
func (m *Manager) pushLine(ctx context.Context, item LineItem) error {
	if !m.authenticated {
		m.persistGuest()
		return nil
	}

	if m.backend == nil {
		return nil
	}
	items, err := m.backend.SetItem(ctx, item)
	if err != nil {
		m.notifier.Error("Failed to update cart")
		m.refetch(ctx)
		return fmt.Errorf("failed to save cart item: %w", err)
	}
	m.items = items
	return nil
}

// persistGuest writes the in-memory cart through to the guest store.
// Callers hold mu.
func (m *Manager) persistGuest() {
	if m.store == nil {
		return
	}
	if err := m.store.Save(m.items); err != nil {
		m.logger.WithError(err).Warn("Failed to persist cart")
	}
}

// refetch replaces the in-memory cart with the authoritative server
// cart after a failed mutation. If the fetch itself fails the
// optimistic local state stays. Callers hold mu.
func (m *Manager) refetch(ctx context.Context) {
	items, err := m.backend.FetchCart(ctx)
	if err != nil {
		m.logger.WithError(err).Warn("Failed to re-fetch cart after error; keeping local state")
		return
	}
	m.items = items
}
