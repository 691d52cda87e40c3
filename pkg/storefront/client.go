// pkg/storefront/client.go

// Package storefront is the Go client for the storefront API. It wraps
// the HTTP surface with typed calls and implements the cart backend
// used by the client-side cart manager.
package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/your-org/storefront-backend/pkg/storefront/cart"
)

// Client talks to the storefront API. A logged-in client attaches its
// bearer token to every request.
type Client struct {
	http *resty.Client
}

// NewClient creates an API client for the given base URL, e.g.
// "http://localhost:8080".
func NewClient(baseURL string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL+"/api/v1").
		SetTimeout(30*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient}
}

// envelope is the standard API response wrapper
type envelope struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// User is the account profile returned by the API
type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	IsAdmin   bool      `json:"is_admin"`
	Addresses []Address `json:"addresses"`
}

// Address is one entry of the user's address book
type Address struct {
	ID         uint   `json:"id,omitempty"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

// Session is the token pair issued at login or registration
type Session struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Product is a catalog entry
type Product struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Image        string          `json:"image"`
	Description  string          `json:"description"`
	Brand        string          `json:"brand"`
	Category     string          `json:"category"`
	Price        int64           `json:"price"`
	CountInStock int             `json:"count_in_stock"`
	Rating       float64         `json:"rating"`
	NumReviews   int             `json:"num_reviews"`
	Weight       string          `json:"weight"`
	IsBestSeller bool            `json:"is_best_seller"`
	Attributes   json.RawMessage `json:"attributes,omitempty"`
}

// ProductList is a catalog page
type ProductList struct {
	Products   []Product `json:"products"`
	Pagination struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
	} `json:"pagination"`
}

// ProductQuery narrows a catalog listing
type ProductQuery struct {
	Page     int
	Limit    int
	Category string
	Search   string
}

// serverCart mirrors the API cart payload
type serverCart struct {
	UserID uint `json:"user_id"`
	Items  []struct {
		ProductID uint   `json:"product_id"`
		Name      string `json:"name"`
		Quantity  int    `json:"quantity"`
		Image     string `json:"image"`
		Price     int64  `json:"price"`
	} `json:"items"`
}

// decode unwraps an API response into out
func decode(resp *resty.Response, out interface{}) error {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.IsError() {
		if env.Error != "" {
			return fmt.Errorf("api error (%d): %s", resp.StatusCode(), env.Error)
		}
		return fmt.Errorf("api error (%d)", resp.StatusCode())
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// Register creates an account and starts a session
func (c *Client) Register(ctx context.Context, email, password, name string) (*Session, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"email":    email,
			"password": password,
			"name":     name,
		}).
		Post("/auth/register")
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}

	var session Session
	if err := decode(resp, &session); err != nil {
		return nil, err
	}

	c.http.SetAuthToken(session.AccessToken)
	return &session, nil
}

// Login authenticates and stores the bearer token for later calls
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"email":    email,
			"password": password,
		}).
		Post("/auth/login")
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}

	var session Session
	if err := decode(resp, &session); err != nil {
		return nil, err
	}

	c.http.SetAuthToken(session.AccessToken)
	return &session, nil
}

// Logout drops the stored token. The server holds no session state.
func (c *Client) Logout() {
	c.http.SetAuthToken("")
}

// IsLoggedIn reports whether the client holds a bearer token
func (c *Client) IsLoggedIn() bool {
	return c.http.Token != ""
}

// Profile fetches the current user's account
func (c *Client) Profile(ctx context.Context) (*User, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/users/profile")
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}

	var u User
	if err := decode(resp, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListProducts fetches a catalog page
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (*ProductList, error) {
	req := c.http.R().SetContext(ctx)
	if q.Page > 0 {
		req.SetQueryParam("page", fmt.Sprintf("%d", q.Page))
	}
	if q.Limit > 0 {
		req.SetQueryParam("limit", fmt.Sprintf("%d", q.Limit))
	}
	if q.Category != "" {
		req.SetQueryParam("category", q.Category)
	}
	if q.Search != "" {
		req.SetQueryParam("search", q.Search)
	}

	resp, err := req.Get("/products")
	if err != nil {
		return nil, fmt.Errorf("product list request failed: %w", err)
	}

	var list ProductList
	if err := decode(resp, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetProduct fetches one product by id
func (c *Client) GetProduct(ctx context.Context, id uint) (*Product, error) {
	resp, err := c.http.R().SetContext(ctx).Get(fmt.Sprintf("/products/%d", id))
	if err != nil {
		return nil, fmt.Errorf("product request failed: %w", err)
	}

	var p Product
	if err := decode(resp, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FetchCart retrieves the server-held cart
func (c *Client) FetchCart(ctx context.Context) ([]cart.LineItem, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/cart")
	if err != nil {
		return nil, fmt.Errorf("cart request failed: %w", err)
	}

	var sc serverCart
	if err := decode(resp, &sc); err != nil {
		return nil, err
	}
	return sc.lineItems(), nil
}

// SetItem sets the server-side quantity for a product and returns the
// resulting cart
func (c *Client) SetItem(ctx context.Context, item cart.LineItem) ([]cart.LineItem, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
		}).
		Post("/cart/items")
	if err != nil {
		return nil, fmt.Errorf("cart update request failed: %w", err)
	}

	var sc serverCart
	if err := decode(resp, &sc); err != nil {
		return nil, err
	}
	return sc.lineItems(), nil
}

// RemoveItem removes a product from the server cart and returns the
// resulting cart
func (c *Client) RemoveItem(ctx context.Context, productID uint) ([]cart.LineItem, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/cart/items/%d", productID))
	if err != nil {
		return nil, fmt.Errorf("cart remove request failed: %w", err)
	}

	var sc serverCart
	if err := decode(resp, &sc); err != nil {
		return nil, err
	}
	return sc.lineItems(), nil
}

// ClearCart empties the server cart
func (c *Client) ClearCart(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Delete("/cart")
	if err != nil {
		return fmt.Errorf("cart clear request failed: %w", err)
	}
	return decode(resp, nil)
}

func (sc *serverCart) lineItems() []cart.LineItem {
	items := make([]cart.LineItem, 0, len(sc.Items))
	for _, it := range sc.Items {
		items = append(items, cart.LineItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Image:     it.Image,
			Price:     it.Price,
		})
	}
	return items
}

// ListAddresses fetches the user's address book
func (c *Client) ListAddresses(ctx context.Context) ([]Address, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/users/addresses")
	if err != nil {
		return nil, fmt.Errorf("address list request failed: %w", err)
	}

	var addresses []Address
	if err := decode(resp, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// CreateAddress adds an address and returns the full address book
func (c *Client) CreateAddress(ctx context.Context, addr Address) ([]Address, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(addr).
		Post("/users/addresses")
	if err != nil {
		return nil, fmt.Errorf("address create request failed: %w", err)
	}

	var addresses []Address
	if err := decode(resp, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// UpdateAddress updates an address and returns the full address book
func (c *Client) UpdateAddress(ctx context.Context, id uint, addr Address) ([]Address, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(addr).
		Put(fmt.Sprintf("/users/addresses/%d", id))
	if err != nil {
		return nil, fmt.Errorf("address update request failed: %w", err)
	}

	var addresses []Address
	if err := decode(resp, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// DeleteAddress removes an address and returns the remaining book
func (c *Client) DeleteAddress(ctx context.Context, id uint) ([]Address, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/users/addresses/%d", id))
	if err != nil {
		return nil, fmt.Errorf("address delete request failed: %w", err)
	}

	var addresses []Address
	if err := decode(resp, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// CreateOrder submits an assembled order
func (c *Client) CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post("/orders")
	if err != nil {
		return nil, fmt.Errorf("order request failed: %w", err)
	}

	var o Order
	if err := decode(resp, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// MyOrders fetches the current user's order history
func (c *Client) MyOrders(ctx context.Context) ([]Order, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/orders")
	if err != nil {
		return nil, fmt.Errorf("order list request failed: %w", err)
	}

	var list struct {
		Orders []Order `json:"orders"`
	}
	if err := decode(resp, &list); err != nil {
		return nil, err
	}
	return list.Orders, nil
}

// GetOrder fetches one of the current user's orders
func (c *Client) GetOrder(ctx context.Context, id uint) (*Order, error) {
	resp, err := c.http.R().SetContext(ctx).Get(fmt.Sprintf("/orders/%d", id))
	if err != nil {
		return nil, fmt.Errorf("order request failed: %w", err)
	}

	var o Order
	if err := decode(resp, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// DownloadInvoice fetches the PDF invoice for an order
func (c *Client) DownloadInvoice(ctx context.Context, orderID uint) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/orders/%d/invoice", orderID))
	if err != nil {
		return nil, fmt.Errorf("invoice request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("invoice request failed with status %d", resp.StatusCode())
	}
	return resp.Body(), nil
}
