// pkg/storefront/checkout.go
package storefront

import (
	"context"
	"fmt"
	"time"

	"github.com/your-org/storefront-backend/pkg/storefront/cart"
)

// OrderItemRequest is one line-item snapshot submitted at checkout
type OrderItemRequest struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image"`
	Price     int64  `json:"price"`
}

// OrderRequest is a checkout submission: item snapshots, the shipping
// address and the price breakdown. Tax and shipping are always zero.
type OrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress ShippingAddress    `json:"shipping_address"`
	ItemsPrice      int64              `json:"items_price"`
	TaxPrice        int64              `json:"tax_price"`
	ShippingPrice   int64              `json:"shipping_price"`
	TotalPrice      int64              `json:"total_price"`
}

// ShippingAddress is the address snapshot attached to an order
type ShippingAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Order is a placed order as returned by the API
type Order struct {
	ID              uint               `json:"id"`
	OrderNumber     string             `json:"order_number"`
	Email           string             `json:"email"`
	ItemsPrice      int64              `json:"items_price"`
	TaxPrice        int64              `json:"tax_price"`
	ShippingPrice   int64              `json:"shipping_price"`
	TotalPrice      int64              `json:"total_price"`
	ShippingAddress ShippingAddress    `json:"shipping_address"`
	PaymentMethod   string             `json:"payment_method"`
	IsPaid          bool               `json:"is_paid"`
	PaidAt          *time.Time         `json:"paid_at,omitempty"`
	IsDelivered     bool               `json:"is_delivered"`
	DeliveredAt     *time.Time         `json:"delivered_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	Items           []OrderItemRequest `json:"items"`
}

// AssembleOrder builds an order submission from cart lines and a
// shipping address. It is pure: no I/O, no clock, no mutation of its
// inputs. The items price is the quantity-extended sum of the lines
// and the total equals it because tax and shipping are zero.
func AssembleOrder(items []cart.LineItem, addr ShippingAddress) (*OrderRequest, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}
	if err := validateAddress(addr); err != nil {
		return nil, err
	}

	req := &OrderRequest{
		ShippingAddress: addr,
		Items:           make([]OrderItemRequest, 0, len(items)),
	}

	for _, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("invalid quantity for %s", item.Name)
		}
		req.Items = append(req.Items, OrderItemRequest{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Image:     item.Image,
			Price:     item.Price,
		})
		req.ItemsPrice += item.LineTotal()
	}

	req.TotalPrice = req.ItemsPrice
	return req, nil
}

func validateAddress(addr ShippingAddress) error {
	switch {
	case addr.Street == "":
		return fmt.Errorf("shipping address street is required")
	case addr.City == "":
		return fmt.Errorf("shipping address city is required")
	case addr.PostalCode == "":
		return fmt.Errorf("shipping address postal code is required")
	case addr.Country == "":
		return fmt.Errorf("shipping address country is required")
	}
	return nil
}

// Checkout assembles an order from the manager's cart, submits it and
// clears the cart. The cart is cleared only after the order is
// accepted, so a failed checkout leaves it intact.
func (c *Client) Checkout(ctx context.Context, mgr *cart.Manager, addr ShippingAddress) (*Order, error) {
	req, err := AssembleOrder(mgr.Items(), addr)
	if err != nil {
		return nil, err
	}

	o, err := c.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := mgr.Clear(ctx); err != nil {
		// The order is already placed; a stale local cart is not fatal
		return o, nil
	}
	return o, nil
}
