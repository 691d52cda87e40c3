// internal/domain/order/service.go
package order

import (
	"fmt"
	"log"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Service handles order business logic
type Service struct {
	db          *gorm.DB
	config      *config.Config
	cartService *cart.Service
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, cartService *cart.Service) *Service {
	return &Service{
		db:          db,
		config:      cfg,
		cartService: cartService,
	}
}

// OrderItemRequest is one submitted line-item snapshot
type OrderItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Image     string `json:"image"`
	Price     int64  `json:"price" binding:"required,min=1"`
}

// CreateOrderRequest represents checkout submission: item snapshots, the
// shipping address and the client-computed price breakdown.
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingAddress ShippingAddress    `json:"shipping_address" binding:"required"`
	ItemsPrice      int64              `json:"items_price" binding:"required,min=1"`
	TaxPrice        int64              `json:"tax_price"`
	ShippingPrice   int64              `json:"shipping_price"`
	TotalPrice      int64              `json:"total_price" binding:"required,min=1"`
}

// OrderListRequest represents order list query parameters
type OrderListRequest struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	UserID    uint   `form:"-"`
	SortOrder string `form:"sort_order,default=desc"`
}

// OrderListResponse represents order list response with pagination
type OrderListResponse struct {
	Orders     []Order    `json:"orders"`
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

// CreateOrder creates an immutable order from submitted snapshots. Totals are
// re-derived server-side and must match the submission; the user's cart is
// cleared only after the order is committed, so a failed submission leaves
// the cart intact.
func (s *Service) CreateOrder(userID uint, req *CreateOrderRequest) (*Order, error) {
	if err := validateShippingAddress(&req.ShippingAddress); err != nil {
		return nil, err
	}

	// Re-derive the breakdown from the submitted items
	var itemsPrice int64
	seen := make(map[uint]bool, len(req.Items))
	for _, item := range req.Items {
		if seen[item.ProductID] {
			return nil, fmt.Errorf("duplicate line item for product %d", item.ProductID)
		}
		seen[item.ProductID] = true
		itemsPrice += item.Price * int64(item.Quantity)
	}

	if itemsPrice != req.ItemsPrice || itemsPrice != req.TotalPrice ||
		req.TaxPrice != 0 || req.ShippingPrice != 0 {
		return nil, fmt.Errorf("submitted totals do not match order items")
	}

	// Every referenced product must exist
	for _, item := range req.Items {
		var prod product.Product
		if err := s.db.Select("id").Where("id = ?", item.ProductID).First(&prod).Error; err != nil {
			return nil, fmt.Errorf("product %d not found", item.ProductID)
		}
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Get user email for the order record
	var user struct {
		Email string
	}
	if err := tx.Table("users").Select("email").Where("id = ?", userID).First(&user).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to get user email: %w", err)
	}

	order := Order{
		UserID:          userID,
		Email:           user.Email,
		ItemsPrice:      itemsPrice,
		TaxPrice:        0,
		ShippingPrice:   0,
		TotalPrice:      itemsPrice,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   "simulated",
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order.OrderNumber = order.GenerateOrderNumber()
	if err := tx.Model(&order).Update("order_number", order.OrderNumber).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update order number: %w", err)
	}

	for _, item := range req.Items {
		orderItem := OrderItem{
			OrderID:    order.ID,
			ProductID:  item.ProductID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			Image:      item.Image,
			Price:      item.Price,
			TotalPrice: item.Price * int64(item.Quantity),
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}

	// Clear the user's server cart now that the order exists
	if s.cartService != nil {
		if err := s.cartService.Clear(userID); err != nil {
			// The order stands; a stale cart is recoverable
			log.Printf("Warning: failed to clear cart after order creation: %v", err)
		}
	}

	return s.GetOrder(order.ID)
}

// GetOrders retrieves a user's orders with pagination
func (s *Service) GetOrders(req *OrderListRequest) (*OrderListResponse, error) {
	var orders []Order
	var total int64

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&Order{}).Preload("Items")

	if req.UserID > 0 {
		query = query.Where("user_id = ?", req.UserID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	sortOrder := "DESC"
	if req.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at " + sortOrder).
		Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
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

	return &OrderListResponse{
		Orders:     orders,
		Pagination: pagination,
	}, nil
}

// GetOrder retrieves a single order by ID
func (s *Service) GetOrder(id uint) (*Order, error) {
	var order Order
	result := s.db.Preload("Items").Where("id = ?", id).First(&order)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}

	return &order, nil
}

// MarkPaid flags an order as paid (simulated payment)
func (s *Service) MarkPaid(orderID uint) (*Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	if order.IsPaid {
		return nil, fmt.Errorf("order is already paid")
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"is_paid": true,
		"paid_at": now,
	}

	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}

	return s.GetOrder(orderID)
}

// MarkDelivered flags an order as delivered
func (s *Service) MarkDelivered(orderID uint) (*Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	if !order.IsPaid {
		return nil, fmt.Errorf("order has not been paid")
	}
	if order.IsDelivered {
		return nil, fmt.Errorf("order is already delivered")
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"is_delivered": true,
		"delivered_at": now,
	}

	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to mark order delivered: %w", err)
	}

	return s.GetOrder(orderID)
}

// validateShippingAddress checks the embedded address is complete enough to
// ship to
func validateShippingAddress(addr *ShippingAddress) error {
	if addr.Street == "" {
		return fmt.Errorf("street is required")
	}
	if addr.City == "" {
		return fmt.Errorf("city is required")
	}
	if addr.PostalCode == "" {
		return fmt.Errorf("postal code is required")
	}
	if addr.Country == "" {
		return fmt.Errorf("country is required")
	}
	return nil
}
