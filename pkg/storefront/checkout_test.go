// pkg/storefront/checkout_test.go
package storefront

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/pkg/storefront/cart"
)

func testAddress() ShippingAddress {
	return ShippingAddress{
		Street:     "12 Spice Market Road",
		City:       "Chennai",
		State:      "Tamil Nadu",
		PostalCode: "600001",
		Country:    "India",
	}
}

func TestAssembleOrderComputesTotals(t *testing.T) {
	items := []cart.LineItem{
		{ProductID: 1, Name: "Premium Red Chilli Powder", Quantity: 2, Price: 149},
		{ProductID: 2, Name: "Golden Turmeric Powder", Quantity: 3, Price: 129},
	}

	req, err := AssembleOrder(items, testAddress())
	require.NoError(t, err)

	assert.Equal(t, int64(2*149+3*129), req.ItemsPrice)
	assert.Equal(t, req.ItemsPrice, req.TotalPrice)
	assert.Zero(t, req.TaxPrice)
	assert.Zero(t, req.ShippingPrice)
	require.Len(t, req.Items, 2)
	assert.Equal(t, uint(1), req.Items[0].ProductID)
	assert.Equal(t, int64(149), req.Items[0].Price)
}

func TestAssembleOrderEmptyCart(t *testing.T) {
	_, err := AssembleOrder(nil, testAddress())
	assert.ErrorContains(t, err, "cart is empty")
}

func TestAssembleOrderIncompleteAddress(t *testing.T) {
	items := []cart.LineItem{{ProductID: 1, Name: "A", Quantity: 1, Price: 100}}

	cases := []struct {
		name   string
		mutate func(*ShippingAddress)
	}{
		{"missing street", func(a *ShippingAddress) { a.Street = "" }},
		{"missing city", func(a *ShippingAddress) { a.City = "" }},
		{"missing postal code", func(a *ShippingAddress) { a.PostalCode = "" }},
		{"missing country", func(a *ShippingAddress) { a.Country = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			addr := testAddress()
			tc.mutate(&addr)
			_, err := AssembleOrder(items, addr)
			assert.Error(t, err)
		})
	}
}

func TestAssembleOrderStateOptional(t *testing.T) {
	items := []cart.LineItem{{ProductID: 1, Name: "A", Quantity: 1, Price: 100}}
	addr := testAddress()
	addr.State = ""

	_, err := AssembleOrder(items, addr)
	assert.NoError(t, err)
}

func TestAssembleOrderDoesNotMutateInput(t *testing.T) {
	items := []cart.LineItem{{ProductID: 1, Name: "A", Quantity: 2, Price: 100}}

	req, err := AssembleOrder(items, testAddress())
	require.NoError(t, err)

	req.Items[0].Quantity = 99
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAssembleOrderRejectsInvalidQuantity(t *testing.T) {
	items := []cart.LineItem{{ProductID: 1, Name: "A", Quantity: 0, Price: 100}}

	_, err := AssembleOrder(items, testAddress())
	assert.Error(t, err)
}
