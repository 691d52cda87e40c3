// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product represents a catalog product. The cart never references a product
// live; it snapshots name/price/image at add time.
type Product struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null;size:255" json:"name"`
	Slug         string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Image        string         `gorm:"not null;size:500" json:"image"`
	Description  string         `gorm:"type:text" json:"description"`
	Brand        string         `gorm:"size:100" json:"brand"`
	Category     string         `gorm:"size:100;index" json:"category"`
	Price        int64          `gorm:"not null" json:"price"` // Smallest currency unit
	CountInStock int            `gorm:"default:0" json:"count_in_stock"`
	Rating       float64        `gorm:"default:0" json:"rating"`
	NumReviews   int            `gorm:"default:0" json:"num_reviews"`
	Weight       string         `gorm:"size:50" json:"weight"`
	IsBestSeller bool           `gorm:"default:false" json:"is_best_seller"`
	Attributes   datatypes.JSON `json:"attributes,omitempty"` // ingredients, usage tips, storage etc.
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// IsInStock reports whether the product can still be ordered
func (p *Product) IsInStock() bool {
	return p.CountInStock > 0
}

// GetFormattedPrice returns the price in major currency units
func (p *Product) GetFormattedPrice() float64 {
	return float64(p.Price) / 100
}
