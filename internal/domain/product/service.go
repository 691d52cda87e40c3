// internal/domain/product/service.go
package product

import (
	"fmt"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service handles product business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Page         int    `form:"page,default=1"`
	Limit        int    `form:"limit,default=20"`
	Category     string `form:"category"`
	Search       string `form:"search"`
	SortBy       string `form:"sort_by,default=created_at"`
	SortOrder    string `form:"sort_order,default=desc"`
	MinPrice     int64  `form:"min_price"`
	MaxPrice     int64  `form:"max_price"`
	IsBestSeller *bool  `form:"is_best_seller"`
}

// ProductCreateRequest represents product creation data
type ProductCreateRequest struct {
	Name         string         `json:"name" binding:"required"`
	Image        string         `json:"image" binding:"required"`
	Description  string         `json:"description"`
	Brand        string         `json:"brand"`
	Category     string         `json:"category" binding:"required"`
	Price        int64          `json:"price" binding:"required,min=1"`
	CountInStock int            `json:"count_in_stock" binding:"min=0"`
	Weight       string         `json:"weight"`
	IsBestSeller bool           `json:"is_best_seller"`
	Attributes   datatypes.JSON `json:"attributes"`
}

// ProductUpdateRequest represents product update data
type ProductUpdateRequest struct {
	Name         *string         `json:"name"`
	Image        *string         `json:"image"`
	Description  *string         `json:"description"`
	Brand        *string         `json:"brand"`
	Category     *string         `json:"category"`
	Price        *int64          `json:"price" binding:"omitempty,min=1"`
	CountInStock *int            `json:"count_in_stock" binding:"omitempty,min=0"`
	Weight       *string         `json:"weight"`
	IsBestSeller *bool           `json:"is_best_seller"`
	Attributes   *datatypes.JSON `json:"attributes"`
}

// ProductResponse represents product response with pagination
type ProductResponse struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// GetProducts retrieves products with filtering and pagination
func (s *Service) GetProducts(req *ProductListRequest) (*ProductResponse, error) {
	var products []Product
	var total int64

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&Product{})

	// Apply filters
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}

	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", search, search)
	}

	if req.MinPrice > 0 {
		query = query.Where("price >= ?", req.MinPrice)
	}

	if req.MaxPrice > 0 {
		query = query.Where("price <= ?", req.MaxPrice)
	}

	if req.IsBestSeller != nil {
		query = query.Where("is_best_seller = ?", *req.IsBestSeller)
	}

	// Count total records
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	// Apply sorting
	query = query.Order(s.buildOrderClause(req.SortBy, req.SortOrder))

	// Apply pagination
	offset := (req.Page - 1) * req.Limit
	if err := query.Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	pagination := Pagination{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    req.Page < totalPages,
		HasPrev:    req.Page > 1,
	}

	return &ProductResponse{
		Products:   products,
		Pagination: pagination,
	}, nil
}

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(id uint) (*Product, error) {
	var product Product
	result := s.db.Where("id = ?", id).First(&product)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}

	return &product, nil
}

// GetProductBySlug retrieves a single product by slug
func (s *Service) GetProductBySlug(slug string) (*Product, error) {
	var product Product
	result := s.db.Where("slug = ?", slug).First(&product)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}

	return &product, nil
}

// CreateProduct creates a new product
func (s *Service) CreateProduct(req *ProductCreateRequest) (*Product, error) {
	product := Product{
		Name:         req.Name,
		Slug:         Slugify(req.Name),
		Image:        req.Image,
		Description:  req.Description,
		Brand:        req.Brand,
		Category:     req.Category,
		Price:        req.Price,
		CountInStock: req.CountInStock,
		Weight:       req.Weight,
		IsBestSeller: req.IsBestSeller,
		Attributes:   req.Attributes,
	}

	// Ensure the slug is unique
	var existing Product
	if err := s.db.Where("slug = ?", product.Slug).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("product with this name already exists")
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &product, nil
}

// UpdateProduct updates an existing product
func (s *Service) UpdateProduct(id uint, req *ProductUpdateRequest) (*Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
		updates["slug"] = Slugify(*req.Name)
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.CountInStock != nil {
		updates["count_in_stock"] = *req.CountInStock
	}
	if req.Weight != nil {
		updates["weight"] = *req.Weight
	}
	if req.IsBestSeller != nil {
		updates["is_best_seller"] = *req.IsBestSeller
	}
	if req.Attributes != nil {
		updates["attributes"] = *req.Attributes
	}

	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return s.GetProduct(id)
}

// DeleteProduct soft-deletes a product
func (s *Service) DeleteProduct(id uint) error {
	result := s.db.Delete(&Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}

// buildOrderClause builds a safe ORDER BY clause
func (s *Service) buildOrderClause(sortBy, sortOrder string) string {
	allowedFields := map[string]bool{
		"created_at": true,
		"price":      true,
		"name":       true,
		"rating":     true,
	}

	if !allowedFields[sortBy] {
		sortBy = "created_at"
	}

	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	return fmt.Sprintf("%s %s", sortBy, sortOrder)
}

// Slugify converts a product name into a URL-safe slug
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := false
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == ' ' || r == '-' || r == '_':
			if !lastDash && b.Len() > 0 {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
