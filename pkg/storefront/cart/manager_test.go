// pkg/storefront/cart/manager_test.go
package cart

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend mimics the server cart: SET-quantity semantics, one line
// per product.
type fakeBackend struct {
	items    []LineItem
	failNext bool
	failFetch bool
	setCalls int
}

func (b *fakeBackend) FetchCart(ctx context.Context) ([]LineItem, error) {
	if b.failFetch {
		return nil, errors.New("fetch failed")
	}
	out := make([]LineItem, len(b.items))
	copy(out, b.items)
	return out, nil
}

func (b *fakeBackend) SetItem(ctx context.Context, item LineItem) ([]LineItem, error) {
	b.setCalls++
	if b.failNext {
		b.failNext = false
		return nil, errors.New("set failed")
	}
	for i := range b.items {
		if b.items[i].ProductID == item.ProductID {
			b.items[i].Quantity = item.Quantity
			return b.FetchCart(ctx)
		}
	}
	b.items = append(b.items, item)
	return b.FetchCart(ctx)
}

func (b *fakeBackend) RemoveItem(ctx context.Context, productID uint) ([]LineItem, error) {
	if b.failNext {
		b.failNext = false
		return nil, errors.New("remove failed")
	}
	for i := range b.items {
		if b.items[i].ProductID == productID {
			b.items = append(b.items[:i], b.items[i+1:]...)
			break
		}
	}
	return b.FetchCart(ctx)
}

func (b *fakeBackend) ClearCart(ctx context.Context) error {
	if b.failNext {
		b.failNext = false
		return errors.New("clear failed")
	}
	b.items = nil
	return nil
}

// memStore is an in-memory guest store
type memStore struct {
	items []LineItem
	saved int
}

func (s *memStore) Load() ([]LineItem, error) {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *memStore) Save(items []LineItem) error {
	s.items = make([]LineItem, len(items))
	copy(s.items, items)
	s.saved++
	return nil
}

func (s *memStore) Clear() error {
	s.items = nil
	return nil
}

// recordingNotifier captures notifications in order
type recordingNotifier struct {
	infos  []string
	errors []string
}

func (n *recordingNotifier) Info(msg string)  { n.infos = append(n.infos, msg) }
func (n *recordingNotifier) Error(msg string) { n.errors = append(n.errors, msg) }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestManager(backend Backend, store Store, notifier Notifier) *Manager {
	return NewManager(backend, store, notifier, quietLogger())
}

func chilli(qty int) LineItem {
	return LineItem{ProductID: 1, Name: "Premium Red Chilli Powder", Quantity: qty, Price: 149}
}

func turmeric(qty int) LineItem {
	return LineItem{ProductID: 2, Name: "Golden Turmeric Powder", Quantity: qty, Price: 129}
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	m := newTestManager(nil, store, nil)

	require.NoError(t, m.AddItem(ctx, chilli(1)))
	assert.Equal(t, int64(149), m.TotalPrice())

	require.NoError(t, m.AddItem(ctx, chilli(2)))

	items := m.Items()
	require.Len(t, items, 1, "repeat adds must not create a second line")
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, int64(447), m.TotalPrice())
}

func TestAddItemKeepsOriginalSnapshot(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(nil, &memStore{}, nil)

	require.NoError(t, m.AddItem(ctx, chilli(1)))

	// Same product with a changed price: quantity accumulates but the
	// original snapshot wins.
	repriced := chilli(1)
	repriced.Price = 999
	require.NoError(t, m.AddItem(ctx, repriced))

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(149), items[0].Price)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddItemValidation(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(nil, &memStore{}, nil)

	assert.Error(t, m.AddItem(ctx, LineItem{ProductID: 0, Quantity: 1}))
	assert.Error(t, m.AddItem(ctx, LineItem{ProductID: 1, Quantity: 0}))
	assert.Empty(t, m.Items())
}

func TestAddItemNotifications(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	m := newTestManager(nil, &memStore{}, notifier)

	require.NoError(t, m.AddItem(ctx, chilli(1)))
	require.NoError(t, m.AddItem(ctx, chilli(1)))

	require.Len(t, notifier.infos, 2)
	assert.Contains(t, notifier.infos[0], "Added")
	assert.Contains(t, notifier.infos[1], "Updated")
}

func TestUpdateQuantityIsAbsolute(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(nil, &memStore{}, nil)

	require.NoError(t, m.AddItem(ctx, chilli(5)))
	require.NoError(t, m.UpdateQuantity(ctx, 1, 2))

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestUpdateQuantityBelowOneRemoves(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(nil, &memStore{}, nil)

	require.NoError(t, m.AddItem(ctx, chilli(2)))
	require.NoError(t, m.UpdateQuantity(ctx, 1, 0))

	assert.Empty(t, m.Items())
}

func TestUpdateQuantityAbsentProductIsNoop(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(nil, &memStore{}, nil)

	require.NoError(t, m.AddItem(ctx, chilli(1)))
	require.NoError(t, m.UpdateQuantity(ctx, 42, 3))

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, uint(1), items[0].ProductID)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	m := newTestManager(nil, &memStore{}, notifier)

	require.NoError(t, m.AddItem(ctx, chilli(1)))
	require.NoError(t, m.RemoveItem(ctx, 1))
	require.NoError(t, m.RemoveItem(ctx, 1))

	assert.Empty(t, m.Items())
	// One removal notification, not two
	removed := 0
	for _, msg := range notifier.infos {
		if msg == "Removed Premium Red Chilli Powder from cart" {
			removed++
		}
	}
	assert.Equal(t, 1, removed)
}

func TestClearZeroesTotals(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(nil, &memStore{}, nil)

	require.NoError(t, m.AddItem(ctx, chilli(2)))
	require.NoError(t, m.AddItem(ctx, turmeric(3)))
	require.NoError(t, m.Clear(ctx))

	assert.Empty(t, m.Items())
	assert.Equal(t, 0, m.TotalItems())
	assert.Equal(t, int64(0), m.TotalPrice())
}

func TestTotalPriceSumsLines(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(nil, &memStore{}, nil)

	require.NoError(t, m.AddItem(ctx, LineItem{ProductID: 1, Name: "A", Quantity: 2, Price: 100}))
	require.NoError(t, m.AddItem(ctx, LineItem{ProductID: 2, Name: "B", Quantity: 3, Price: 50}))

	assert.Equal(t, int64(350), m.TotalPrice())
	assert.Equal(t, 5, m.TotalItems())
}

func TestGuestMutationsPersistToStore(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	m := newTestManager(nil, store, nil)

	require.NoError(t, m.AddItem(ctx, chilli(1)))
	require.NoError(t, m.UpdateQuantity(ctx, 1, 4))
	require.NoError(t, m.RemoveItem(ctx, 1))

	assert.Equal(t, 3, store.saved, "every guest mutation writes through")
	assert.Empty(t, store.items)
}

func TestLoginReplacesGuestCart(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{items: []LineItem{turmeric(1)}}
	store := &memStore{}
	m := newTestManager(backend, store, nil)

	require.NoError(t, m.AddItem(ctx, chilli(2)))
	require.NoError(t, m.Login(ctx))

	items := m.Items()
	require.Len(t, items, 1, "guest items are not merged into the server cart")
	assert.Equal(t, uint(2), items[0].ProductID)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestLogoutRestoresGuestCart(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	store := &memStore{}
	m := newTestManager(backend, store, nil)

	require.NoError(t, m.AddItem(ctx, chilli(2)))
	require.NoError(t, m.Login(ctx))

	// Authenticated session activity must not touch the guest copy
	require.NoError(t, m.AddItem(ctx, turmeric(5)))
	require.NoError(t, m.Clear(ctx))

	m.Logout()

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, uint(1), items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAuthenticatedAddPushesSetQuantity(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	m := newTestManager(backend, &memStore{}, nil)
	require.NoError(t, m.Login(ctx))

	require.NoError(t, m.AddItem(ctx, chilli(1)))
	require.NoError(t, m.AddItem(ctx, chilli(2)))

	require.Len(t, backend.items, 1)
	assert.Equal(t, 3, backend.items[0].Quantity, "client sends the accumulated total")
	assert.Equal(t, 2, backend.setCalls)
}

func TestBackendFailureRefetchesAuthoritativeCart(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{items: []LineItem{chilli(1)}}
	notifier := &recordingNotifier{}
	m := newTestManager(backend, &memStore{}, notifier)
	require.NoError(t, m.Login(ctx))

	backend.failNext = true
	err := m.AddItem(ctx, chilli(2))
	require.Error(t, err)

	// Local state reverted to what the server holds
	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.NotEmpty(t, notifier.errors)
}

func TestBackendFailureKeepsOptimisticStateWhenRefetchFails(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{items: []LineItem{chilli(1)}}
	m := newTestManager(backend, &memStore{}, nil)
	require.NoError(t, m.Login(ctx))

	backend.failNext = true
	backend.failFetch = true
	err := m.AddItem(ctx, chilli(2))
	require.Error(t, err)

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity, "optimistic update survives when re-fetch fails")
}

func TestLoginFetchFailureLeavesEmptyCart(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{failFetch: true}
	m := newTestManager(backend, &memStore{}, nil)

	require.NoError(t, m.AddItem(ctx, chilli(1)))
	require.Error(t, m.Login(ctx))

	assert.True(t, m.IsAuthenticated())
	assert.Empty(t, m.Items())
}

func TestAuthenticatedClearLeavesGuestStore(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	store := &memStore{}
	m := newTestManager(backend, store, nil)

	require.NoError(t, m.AddItem(ctx, chilli(2)))
	require.NoError(t, m.Login(ctx))
	require.NoError(t, m.Clear(ctx))

	assert.Len(t, store.items, 1, "clearing the server cart must not wipe the guest copy")
}

func TestGuestClearWipesStore(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	m := newTestManager(nil, store, nil)

	require.NoError(t, m.AddItem(ctx, chilli(2)))
	require.NoError(t, m.Clear(ctx))

	assert.Empty(t, store.items)
}

func TestItemsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(nil, &memStore{}, nil)
	require.NoError(t, m.AddItem(ctx, chilli(1)))

	items := m.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, m.Items()[0].Quantity)
}
