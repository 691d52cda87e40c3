package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotals(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		totals := CalculateTotals(nil)

		assert.Equal(t, 0, totals.ItemCount)
		assert.Equal(t, 0, totals.TotalQuantity)
		assert.Equal(t, int64(0), totals.TotalPrice)
	})

	t.Run("sums price times quantity across lines", func(t *testing.T) {
		items := []CartItem{
			{ProductID: 1, Price: 100, Quantity: 2},
			{ProductID: 2, Price: 50, Quantity: 3},
		}

		totals := CalculateTotals(items)

		assert.Equal(t, 2, totals.ItemCount)
		assert.Equal(t, 5, totals.TotalQuantity)
		assert.Equal(t, int64(350), totals.ItemsPrice)
		assert.Equal(t, int64(350), totals.TotalPrice)
	})

	t.Run("tax and shipping are always zero", func(t *testing.T) {
		totals := CalculateTotals([]CartItem{{ProductID: 1, Price: 149, Quantity: 3}})

		assert.Equal(t, int64(0), totals.TaxPrice)
		assert.Equal(t, int64(0), totals.ShippingPrice)
		assert.Equal(t, int64(447), totals.TotalPrice)
	})
}
