// pkg/storefront/client_test.go
package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/pkg/storefront/cart"
)

// fakeAPI is a minimal in-memory storefront server
type fakeAPI struct {
	mux   *http.ServeMux
	token string
	cart  []map[string]interface{}

	orders      []OrderRequest
	cartCleared int
}

func newFakeAPI() *fakeAPI {
	api := &fakeAPI{mux: http.NewServeMux(), token: "test-token"}

	api.mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "Secret@123" {
			api.writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		api.writeData(w, http.StatusOK, map[string]interface{}{
			"user":         map[string]interface{}{"id": 1, "email": body["email"], "name": "Test User"},
			"access_token": api.token,
			"expires_in":   900,
		})
	})

	api.mux.HandleFunc("GET /api/v1/cart", func(w http.ResponseWriter, r *http.Request) {
		if !api.authorized(r) {
			api.writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}
		api.writeCart(w)
	})

	api.mux.HandleFunc("POST /api/v1/cart/items", func(w http.ResponseWriter, r *http.Request) {
		if !api.authorized(r) {
			api.writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}
		var body struct {
			ProductID uint `json:"product_id"`
			Quantity  int  `json:"quantity"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		for _, line := range api.cart {
			if line["product_id"] == body.ProductID {
				line["quantity"] = body.Quantity
				api.writeCart(w)
				return
			}
		}
		api.cart = append(api.cart, map[string]interface{}{
			"product_id": body.ProductID,
			"name":       fmt.Sprintf("Product %d", body.ProductID),
			"quantity":   body.Quantity,
			"price":      int64(100),
		})
		api.writeCart(w)
	})

	api.mux.HandleFunc("DELETE /api/v1/cart/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		api.cart = nil
		api.writeCart(w)
	})

	api.mux.HandleFunc("DELETE /api/v1/cart", func(w http.ResponseWriter, r *http.Request) {
		api.cart = nil
		api.cartCleared++
		api.writeData(w, http.StatusOK, nil)
	})

	api.mux.HandleFunc("POST /api/v1/orders", func(w http.ResponseWriter, r *http.Request) {
		if !api.authorized(r) {
			api.writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}
		var req OrderRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		api.orders = append(api.orders, req)
		api.writeData(w, http.StatusCreated, map[string]interface{}{
			"id":           1,
			"order_number": "ORD-20260901-00001",
			"items_price":  req.ItemsPrice,
			"total_price":  req.TotalPrice,
			"items":        req.Items,
		})
	})

	return api
}

func (api *fakeAPI) authorized(r *http.Request) bool {
	return r.Header.Get("Authorization") == "Bearer "+api.token
}

func (api *fakeAPI) writeData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"message": "ok", "data": data})
}

func (api *fakeAPI) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"error": msg})
}

func (api *fakeAPI) writeCart(w http.ResponseWriter) {
	api.writeData(w, http.StatusOK, map[string]interface{}{
		"user_id": 1,
		"items":   api.cart,
	})
}

func newTestClientServer(t *testing.T) (*Client, *fakeAPI) {
	t.Helper()
	api := newFakeAPI()
	srv := httptest.NewServer(api.mux)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL), api
}

func TestLoginStoresToken(t *testing.T) {
	client, _ := newTestClientServer(t)
	ctx := context.Background()

	session, err := client.Login(ctx, "user@example.com", "Secret@123")
	require.NoError(t, err)
	assert.Equal(t, "test-token", session.AccessToken)
	assert.True(t, client.IsLoggedIn())

	// Authenticated call now succeeds
	_, err = client.FetchCart(ctx)
	assert.NoError(t, err)
}

func TestLoginFailure(t *testing.T) {
	client, _ := newTestClientServer(t)

	_, err := client.Login(context.Background(), "user@example.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid email or password")
	assert.False(t, client.IsLoggedIn())
}

func TestSetItemReturnsServerCart(t *testing.T) {
	client, _ := newTestClientServer(t)
	ctx := context.Background()
	_, err := client.Login(ctx, "user@example.com", "Secret@123")
	require.NoError(t, err)

	items, err := client.SetItem(ctx, cart.LineItem{ProductID: 7, Quantity: 3})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uint(7), items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)

	// SET semantics: the quantity replaces, never adds
	items, err = client.SetItem(ctx, cart.LineItem{ProductID: 7, Quantity: 5})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestUnauthenticatedCartRequestFails(t *testing.T) {
	client, _ := newTestClientServer(t)

	_, err := client.FetchCart(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestCheckoutSubmitsAndClearsCart(t *testing.T) {
	client, api := newTestClientServer(t)
	ctx := context.Background()
	_, err := client.Login(ctx, "user@example.com", "Secret@123")
	require.NoError(t, err)

	mgr := cart.NewManager(client, nil, nil, nil)
	require.NoError(t, mgr.Login(ctx))
	require.NoError(t, mgr.AddItem(ctx, cart.LineItem{ProductID: 7, Name: "Product 7", Quantity: 2, Price: 100}))

	o, err := client.Checkout(ctx, mgr, testAddress())
	require.NoError(t, err)
	assert.Equal(t, "ORD-20260901-00001", o.OrderNumber)

	require.Len(t, api.orders, 1)
	assert.Equal(t, int64(200), api.orders[0].ItemsPrice)
	assert.Equal(t, 1, api.cartCleared)
	assert.Empty(t, mgr.Items())
}

func TestCheckoutEmptyCartDoesNotSubmit(t *testing.T) {
	client, api := newTestClientServer(t)
	ctx := context.Background()
	_, err := client.Login(ctx, "user@example.com", "Secret@123")
	require.NoError(t, err)

	mgr := cart.NewManager(client, nil, nil, nil)
	require.NoError(t, mgr.Login(ctx))

	_, err = client.Checkout(ctx, mgr, testAddress())
	require.Error(t, err)
	assert.Empty(t, api.orders)
}
