// internal/domain/cart/entity.go
package cart

import (
	"time"

	"gorm.io/gorm"
)

// CartItem represents one line of an authenticated user's cart. Name, price
// and image are snapshots taken from the product when the line was first
// created; later product changes never alter them. At most one row exists per
// (user, product) pair.
type CartItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint           `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Quantity  int            `gorm:"not null;default:1" json:"quantity"`
	Image     string         `gorm:"size:500" json:"image"`
	Price     int64          `gorm:"not null" json:"price"` // Price at time of adding
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// CartTotals represents calculated cart totals. These are derived on every
// read, never stored.
type CartTotals struct {
	ItemCount     int   `json:"item_count"`     // Number of distinct lines
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	ItemsPrice    int64 `json:"items_price"`
	TaxPrice      int64 `json:"tax_price"`
	ShippingPrice int64 `json:"shipping_price"`
	TotalPrice    int64 `json:"total_price"`
}
