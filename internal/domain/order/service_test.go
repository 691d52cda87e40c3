// internal/domain/order/service_test.go
package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validAddress() ShippingAddress {
	return ShippingAddress{
		Street:     "12 Spice Market Road",
		City:       "Chennai",
		State:      "Tamil Nadu",
		PostalCode: "600001",
		Country:    "India",
	}
}

func TestValidateShippingAddress(t *testing.T) {
	addr := validAddress()
	assert.NoError(t, validateShippingAddress(&addr))

	// State is the only optional field
	addr.State = ""
	assert.NoError(t, validateShippingAddress(&addr))

	for _, mutate := range []func(*ShippingAddress){
		func(a *ShippingAddress) { a.Street = "" },
		func(a *ShippingAddress) { a.City = "" },
		func(a *ShippingAddress) { a.PostalCode = "" },
		func(a *ShippingAddress) { a.Country = "" },
	} {
		addr := validAddress()
		mutate(&addr)
		assert.Error(t, validateShippingAddress(&addr))
	}
}
