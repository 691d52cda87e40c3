// internal/domain/product/service_test.go
package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Premium Red Chilli Powder", "premium-red-chilli-powder"},
		{"Golden Turmeric Powder", "golden-turmeric-powder"},
		{"  Spaced  Out  Name  ", "spaced-out-name"},
		{"Chilli & Pepper 100%", "chilli-pepper-100"},
		{"already-a-slug", "already-a-slug"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}

func TestIsInStock(t *testing.T) {
	assert.True(t, (&Product{CountInStock: 3}).IsInStock())
	assert.False(t, (&Product{CountInStock: 0}).IsInStock())
}

func TestBuildOrderClauseWhitelist(t *testing.T) {
	s := &Service{}

	assert.Equal(t, "price asc", s.buildOrderClause("price", "asc"))
	assert.Equal(t, "rating desc", s.buildOrderClause("rating", "desc"))
	// Unknown columns and directions fall back to the default
	assert.Equal(t, "created_at desc", s.buildOrderClause("password; drop table", "asc"))
	assert.Equal(t, "created_at desc", s.buildOrderClause("", ""))
}
