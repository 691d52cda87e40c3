// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"gorm.io/datatypes"
)

// RunMigrations runs all database migrations
func (d *Database) RunMigrations() error {
	log.Println("Running database migrations...")

	err := d.db.AutoMigrate(
		&user.User{},
		&user.Address{},
		&product.Product{},
		&cart.CartItem{},
		&order.Order{},
		&order.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// CreateIndexes creates additional database indexes for performance
func (d *Database) CreateIndexes() error {
	log.Println("Creating database indexes...")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category_price ON products(category, price)",
		"CREATE INDEX IF NOT EXISTS idx_products_best_seller ON products(is_best_seller) WHERE is_best_seller = true",
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_cart_items_user ON cart_items(user_id)",
	}

	for _, index := range indexes {
		if err := d.db.Exec(index).Error; err != nil {
			log.Printf("Warning: failed to create index: %v", err)
		}
	}

	log.Println("Database indexes created successfully")
	return nil
}

// SeedInitialData seeds the catalog and an admin user when the
// database is empty. Intended for development environments only.
func (d *Database) SeedInitialData() error {
	log.Println("Seeding initial data...")

	if err := d.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := d.seedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Println("Initial data seeded successfully")
	return nil
}

func (d *Database) seedAdminUser() error {
	var count int64
	if err := d.db.Model(&user.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	// Password is a bcrypt hash of "Admin@123456"; change it after first login.
	admin := user.User{
		Email:    "admin@bvrspices.com",
		Password: "$2a$12$LQv3c1yqBWVHxkd0LHAkCOYz6TtxMQJqhN8/LewfBPj3QJxkAKDCO",
		Name:     "Store Admin",
		IsActive: true,
		IsAdmin:  true,
	}
	return d.db.Create(&admin).Error
}

func (d *Database) seedProducts() error {
	var count int64
	if err := d.db.Model(&product.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []product.Product{
		{
			Name:         "Premium Red Chilli Powder",
			Slug:         "premium-red-chilli-powder",
			Image:        "/images/chilli-powder.jpg",
			Description:  "Vibrant, fiery chilli powder stone-ground from sun-dried Guntur chillies. Adds deep colour and clean heat to curries and marinades.",
			Brand:        "BVR Spices",
			Category:     "Powders",
			Price:        14900,
			CountInStock: 50,
			Rating:       4.7,
			NumReviews:   128,
			Weight:       "250g",
			IsBestSeller: true,
			Attributes: datatypes.JSON([]byte(`{
				"ingredients": ["Dried red chillies"],
				"usageTips": "Use sparingly; a little goes a long way. Bloom in hot oil for best colour.",
				"shelfLife": "12 months",
				"origin": "Guntur, Andhra Pradesh"
			}`)),
		},
		{
			Name:         "Golden Turmeric Powder",
			Slug:         "golden-turmeric-powder",
			Image:        "/images/turmeric-powder.jpg",
			Description:  "High-curcumin turmeric powder milled from farm-fresh rhizomes. Earthy, bright and essential in every kitchen.",
			Brand:        "BVR Spices",
			Category:     "Powders",
			Price:        12900,
			CountInStock: 75,
			Rating:       4.8,
			NumReviews:   203,
			Weight:       "250g",
			IsBestSeller: true,
			Attributes: datatypes.JSON([]byte(`{
				"ingredients": ["Turmeric rhizomes"],
				"usageTips": "Add early in cooking so the rawness cooks off. Pairs well with black pepper.",
				"shelfLife": "18 months",
				"origin": "Erode, Tamil Nadu"
			}`)),
		},
		{
			Name:         "Royal Garam Masala",
			Slug:         "royal-garam-masala",
			Image:        "/images/garam-masala.jpg",
			Description:  "Small-batch garam masala blended from whole roasted spices. Warm, aromatic finish for curries, dals and biryanis.",
			Brand:        "BVR Spices",
			Category:     "Masalas",
			Price:        19900,
			CountInStock: 40,
			Rating:       4.9,
			NumReviews:   156,
			Weight:       "100g",
			IsBestSeller: true,
			Attributes: datatypes.JSON([]byte(`{
				"ingredients": ["Coriander", "Cumin", "Cardamom", "Cinnamon", "Cloves", "Black pepper", "Bay leaf"],
				"usageTips": "Sprinkle at the end of cooking to preserve the aroma.",
				"shelfLife": "9 months",
				"origin": "Blended in-house"
			}`)),
		},
		{
			Name:         "Fresh Coriander Powder",
			Slug:         "fresh-coriander-powder",
			Image:        "/images/coriander-powder.jpg",
			Description:  "Gently roasted and ground coriander seeds with a citrusy, nutty flavour. The workhorse of everyday cooking.",
			Brand:        "BVR Spices",
			Category:     "Powders",
			Price:        9900,
			CountInStock: 60,
			Rating:       4.6,
			NumReviews:   89,
			Weight:       "250g",
			IsBestSeller: false,
			Attributes: datatypes.JSON([]byte(`{
				"ingredients": ["Coriander seeds"],
				"usageTips": "Roast lightly before grinding into fresh batches for maximum aroma.",
				"shelfLife": "12 months",
				"origin": "Rajasthan"
			}`)),
		},
		{
			Name:         "Classic Sambar Masala",
			Slug:         "classic-sambar-masala",
			Image:        "/images/sambar-masala.jpg",
			Description:  "Traditional South Indian sambar blend with roasted lentils, coriander and fenugreek. Authentic taste in every spoon.",
			Brand:        "BVR Spices",
			Category:     "Masalas",
			Price:        17900,
			CountInStock: 35,
			Rating:       4.5,
			NumReviews:   67,
			Weight:       "100g",
			IsBestSeller: false,
			Attributes: datatypes.JSON([]byte(`{
				"ingredients": ["Coriander", "Red chillies", "Toor dal", "Chana dal", "Fenugreek", "Asafoetida"],
				"usageTips": "Add two teaspoons per litre of sambar along with tamarind water.",
				"shelfLife": "9 months",
				"origin": "Blended in-house"
			}`)),
		},
		{
			Name:         "Whole Black Pepper",
			Slug:         "whole-black-pepper",
			Image:        "/images/black-pepper.jpg",
			Description:  "Bold Malabar peppercorns with a sharp, woody bite. Grind fresh for soups, rasam and grills.",
			Brand:        "BVR Spices",
			Category:     "Whole Spices",
			Price:        24900,
			CountInStock: 45,
			Rating:       4.8,
			NumReviews:   112,
			Weight:       "200g",
			IsBestSeller: false,
			Attributes: datatypes.JSON([]byte(`{
				"ingredients": ["Black peppercorns"],
				"usageTips": "Grind just before use; pre-ground pepper loses its punch quickly.",
				"shelfLife": "24 months",
				"origin": "Malabar Coast, Kerala"
			}`)),
		},
	}

	return d.db.Create(&products).Error
}
