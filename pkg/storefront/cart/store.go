// pkg/storefront/cart/store.go
package cart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// cartFileName is the fixed name of the guest cart file, the local
// equivalent of a browser's storage key.
const cartFileName = "cart.json"

// FileStore persists the guest cart as a JSON file. Writes go through
// a temp file and rename so a crash never leaves a half-written cart.
type FileStore struct {
	path string
}

// NewFileStore creates a file store rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, cartFileName)}
}

// Load reads the stored cart. A missing file is an empty cart.
func (s *FileStore) Load() ([]LineItem, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cart file: %w", err)
	}

	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart file: %w", err)
	}
	return items, nil
}

// Save writes the cart atomically
func (s *FileStore) Save(items []LineItem) error {
	if items == nil {
		items = []LineItem{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cart directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace cart file: %w", err)
	}
	return nil
}

// Clear removes the stored cart. Clearing an absent file succeeds.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cart file: %w", err)
	}
	return nil
}
