// pkg/storefront/cart/store_test.go
package cart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	items := []LineItem{
		{ProductID: 1, Name: "Premium Red Chilli Powder", Quantity: 2, Price: 149},
		{ProductID: 2, Name: "Golden Turmeric Powder", Quantity: 1, Price: 129},
	}
	require.NoError(t, store.Save(items))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, items, loaded)
}

func TestFileStoreMissingFileIsEmptyCart(t *testing.T) {
	store := NewFileStore(t.TempDir())

	items, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFileStoreCorruptFileErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, cartFileName), []byte("{not json"), 0o644))

	store := NewFileStore(dir)
	_, err := store.Load()
	assert.Error(t, err)
}

func TestFileStoreClear(t *testing.T) {
	store := NewFileStore(t.TempDir())

	require.NoError(t, store.Save([]LineItem{{ProductID: 1, Name: "A", Quantity: 1, Price: 100}}))
	require.NoError(t, store.Clear())

	items, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, items)

	// Clearing again is fine
	require.NoError(t, store.Clear())
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	store := NewFileStore(dir)

	require.NoError(t, store.Save(nil))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
