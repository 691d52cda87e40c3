// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Order is an immutable snapshot created at checkout. Items, address and
// prices are never mutated after creation; only the payment and delivery
// flags change.
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	Email       string `gorm:"not null;size:255" json:"email"`

	// Price breakdown, in the smallest currency unit. Tax and shipping are
	// always zero.
	ItemsPrice    int64 `gorm:"not null" json:"items_price"`
	TaxPrice      int64 `gorm:"default:0" json:"tax_price"`
	ShippingPrice int64 `gorm:"default:0" json:"shipping_price"`
	TotalPrice    int64 `gorm:"not null" json:"total_price"`

	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`

	PaymentMethod string `gorm:"size:50;default:'simulated'" json:"payment_method"`

	IsPaid      bool       `gorm:"default:false" json:"is_paid"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	IsDelivered bool       `gorm:"default:false" json:"is_delivered"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem is a line-item snapshot. It references the product by id only for
// traceability; name, image and price are copies taken at checkout.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Image     string    `gorm:"size:500" json:"image"`
	Price     int64     `gorm:"not null" json:"price"`       // Per unit
	TotalPrice int64    `gorm:"not null" json:"total_price"` // Quantity * Price
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShippingAddress is the address snapshot embedded in an order
type ShippingAddress struct {
	Street     string `gorm:"size:255" json:"street"`
	City       string `gorm:"size:100" json:"city"`
	State      string `gorm:"size:100" json:"state"`
	PostalCode string `gorm:"size:20" json:"postal_code"`
	Country    string `gorm:"size:100" json:"country"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// GenerateOrderNumber generates a unique order number
func (o *Order) GenerateOrderNumber() string {
	// Format: ORD-YYYYMMDD-XXXXX
	return fmt.Sprintf("ORD-%s-%05d", time.Now().Format("20060102"), o.ID)
}

// GetFormattedTotal returns total amount in major currency units
func (o *Order) GetFormattedTotal() float64 {
	return float64(o.TotalPrice) / 100
}
