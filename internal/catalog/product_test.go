package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{"no discount", 100, 0, 100},
		{"18 percent", 45999, 18, 45999 * 0.82},
		{"full discount", 250, 100, 0},
		{"fractional", 899, 31, 899 * 0.69},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: tt.price, Discount: tt.discount}
			assert.InDelta(t, tt.want, DiscountedPrice(p), 1e-9)
		})
	}
}

func TestDiscountedPrice_NeverExceedsPrice(t *testing.T) {
	for discount := 0.0; discount <= 100; discount += 12.5 {
		p := Product{Price: 1234.56, Discount: discount}
		assert.LessOrEqual(t, DiscountedPrice(p), p.Price,
			"discount %v must not raise the price", discount)
	}
}

func TestCategoryRef_UnmarshalString(t *testing.T) {
	var p Product
	err := json.Unmarshal([]byte(`{"_id":"p1","name":"Lamp","categoryId":"home-decor"}`), &p)
	require.NoError(t, err)

	assert.Equal(t, "home-decor", p.CategoryID.ID)
	assert.Empty(t, p.CategoryID.Name)
	assert.Equal(t, "home-decor", p.CategoryID.DisplayName())
}

func TestCategoryRef_UnmarshalObject(t *testing.T) {
	var p Product
	err := json.Unmarshal([]byte(`{"_id":"p1","categoryId":{"_id":"c9","name":"Home Decor"}}`), &p)
	require.NoError(t, err)

	assert.Equal(t, "c9", p.CategoryID.ID)
	assert.Equal(t, "Home Decor", p.CategoryID.Name)
	assert.Equal(t, "Home Decor", p.CategoryID.DisplayName())
}

func TestCategoryRef_UnmarshalInvalid(t *testing.T) {
	var ref CategoryRef
	err := json.Unmarshal([]byte(`42`), &ref)
	assert.Error(t, err)
}

func TestCategoryRef_DisplayNameEmpty(t *testing.T) {
	assert.Equal(t, "Unknown", CategoryRef{}.DisplayName())
}

func TestCategoryRef_MarshalRoundTrip(t *testing.T) {
	plain := CategoryRef{ID: "electronics"}
	data, err := json.Marshal(plain)
	require.NoError(t, err)
	assert.JSONEq(t, `"electronics"`, string(data))

	populated := CategoryRef{ID: "c9", Name: "Home Decor"}
	data, err = json.Marshal(populated)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"c9","name":"Home Decor"}`, string(data))
}

func TestFallbackPage(t *testing.T) {
	page := FallbackPage(1, 18)
	assert.Len(t, page.Products, 6)
	assert.Equal(t, 6, page.Total)
	assert.Equal(t, 1, page.Pages)

	// Smaller limit simulates the server's pagination
	page = FallbackPage(2, 4)
	assert.Len(t, page.Products, 2)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.Pages)

	// Out of range pages return an empty slice, not an error
	page = FallbackPage(5, 4)
	assert.Empty(t, page.Products)
}
