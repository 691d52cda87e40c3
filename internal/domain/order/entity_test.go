// internal/domain/order/entity_test.go
package order

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	o := &Order{ID: 7}
	want := fmt.Sprintf("ORD-%s-00007", time.Now().Format("20060102"))
	assert.Equal(t, want, o.GenerateOrderNumber())
}

func TestGetFormattedTotal(t *testing.T) {
	o := &Order{TotalPrice: 44700}
	assert.Equal(t, 447.0, o.GetFormattedTotal())
}
