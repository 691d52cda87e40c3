// internal/domain/cart/service.go
package cart

import (
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Service handles cart business logic for authenticated users. Guest carts
// never reach the server; they live in the client's local store and the
// client reconciles them across login/logout.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// SetItemRequest represents the set-quantity request. The endpoint SETS the
// quantity for a product (creating the line if absent); clients that want
// additive behavior compute the new total before calling.
type SetItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// CartResponse represents a shopping cart with items and totals
type CartResponse struct {
	UserID uint       `json:"user_id"`
	Items  []CartItem `json:"items"`
	Totals CartTotals `json:"totals"`
}

// GetCart retrieves the cart for a user. A user with no cart rows gets an
// empty cart, not an error.
func (s *Service) GetCart(userID uint) (*CartResponse, error) {
	var items []CartItem
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	return &CartResponse{
		UserID: userID,
		Items:  items,
		Totals: CalculateTotals(items),
	}, nil
}

// SetItem sets the quantity for a product in the user's cart, snapshotting
// name/price/image from the product when the line is first created.
func (s *Service) SetItem(userID uint, req *SetItemRequest) (*CartResponse, error) {
	// Validate product exists
	var prod product.Product
	result := s.db.Where("id = ?", req.ProductID).First(&prod)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to look up product: %w", result.Error)
	}

	var existing CartItem
	result = s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&existing)

	if result.Error == gorm.ErrRecordNotFound {
		// New line: snapshot name/price/image now
		item := CartItem{
			UserID:    userID,
			ProductID: req.ProductID,
			Name:      prod.Name,
			Quantity:  req.Quantity,
			Image:     prod.Image,
			Price:     prod.Price,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to add cart item: %w", err)
		}
	} else if result.Error != nil {
		return nil, fmt.Errorf("failed to look up cart item: %w", result.Error)
	} else {
		// Existing line keeps its snapshot; only the quantity changes
		if err := s.db.Model(&existing).Update("quantity", req.Quantity).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	}

	return s.GetCart(userID)
}

// RemoveItem removes a product's line from the user's cart. Removing an
// absent line succeeds without changing anything.
func (s *Service) RemoveItem(userID, productID uint) (*CartResponse, error) {
	if err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&CartItem{}).Error; err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}

	return s.GetCart(userID)
}

// Clear removes every line from the user's cart
func (s *Service) Clear(userID uint) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// GetItemCount returns the total quantity across the user's cart
func (s *Service) GetItemCount(userID uint) (int, error) {
	cart, err := s.GetCart(userID)
	if err != nil {
		return 0, err
	}
	return cart.Totals.TotalQuantity, nil
}

// CalculateTotals derives cart totals from the line items. Tax and shipping
// are always zero.
func CalculateTotals(items []CartItem) CartTotals {
	var totals CartTotals

	totals.ItemCount = len(items)

	for _, item := range items {
		totals.TotalQuantity += item.Quantity
		totals.ItemsPrice += item.Price * int64(item.Quantity)
	}

	totals.TaxPrice = 0
	totals.ShippingPrice = 0
	totals.TotalPrice = totals.ItemsPrice + totals.TaxPrice + totals.ShippingPrice

	return totals
}
