package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mmeshcher/floran-storefront/internal/model"
)

func product(id int64, name, description, category, price string) model.Product {
	return model.Product{
		ID:          id,
		Name:        name,
		Description: description,
		Category:    category,
		Price:       decimal.RequireFromString(price),
		InStock:     true,
	}
}

var testProducts = []model.Product{
	product(1, "Red Rose Romance", "A dozen roses for your valentine", "Roses", "59.99"),
	product(2, "Sunshine Daisies", "Bright blooms to celebrate a birthday", "Bouquets", "29.99"),
	product(3, "Pure White Lilies", "Elegant lilies for a sympathy tribute", "Lilies", "70.00"),
	product(4, "Tropical Paradise", "Exotic stems for any achievement", "Exotic", "89.50"),
	product(5, "Lavender Dreams", "Calm purple wishes for a speedy recovery", "Bouquets", "35.00"),
	product(6, "Bridal Blush Peonies", "Soft peonies for the bride", "Wedding", "120.00"),
}

func ids(products []model.Product) []int64 {
	res := make([]int64, 0, len(products))
	for _, p := range products {
		res = append(res, p.ID)
	}
	return res
}

func TestTags(t *testing.T) {
	tests := []struct {
		name      string
		product   model.Product
		occasions []string
		colors    []string
	}{
		{
			name:      "romance and red",
			product:   testProducts[0],
			occasions: []string{"Romance"},
			colors:    []string{"Red", "Pink"},
		},
		{
			name:      "birthday and yellow",
			product:   testProducts[1],
			occasions: []string{"Birthday"},
			colors:    []string{"Yellow"},
		},
		{
			name:      "wedding and pink",
			product:   testProducts[5],
			occasions: []string{"Wedding"},
			colors:    []string{"Pink"},
		},
		{
			name:      "red inside a word is not red",
			product:   product(7, "Shredded Greens", "", "", "10"),
			occasions: nil,
			colors:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.occasions, OccasionTags(tt.product))
			assert.Equal(t, tt.colors, ColorTags(tt.product))
		})
	}
}

func TestPriceRangeContains(t *testing.T) {
	tests := []struct {
		rng   PriceRange
		price string
		want  bool
	}{
		{PriceBudget, "34.99", true},
		{PriceBudget, "35.00", false},
		{PriceMid, "35.00", true},
		{PriceMid, "70.00", true},
		{PriceMid, "70.01", false},
		{PricePremium, "70.00", false},
		{PricePremium, "70.01", true},
		{PriceAll, "1000", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.rng)+" "+tt.price, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rng.Contains(decimal.RequireFromString(tt.price)))
		})
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []int64
	}{
		{name: "empty query keeps everything", query: Query{}, want: []int64{1, 2, 3, 4, 5, 6}},
		{name: "text in name", query: Query{Text: "  LILIES "}, want: []int64{3}},
		{name: "text in category", query: Query{Text: "bouquets"}, want: []int64{2, 5}},
		{name: "text matches derived occasion", query: Query{Text: "get well"}, want: []int64{5}},
		{name: "text matches derived color", query: Query{Text: "mixed"}, want: []int64{4}},
		{name: "occasion", query: Query{Occasion: "Congratulations"}, want: []int64{4}},
		{name: "occasion is case insensitive", query: Query{Occasion: "sympathy"}, want: []int64{3}},
		{name: "color", query: Query{Color: "Pink"}, want: []int64{1, 6}},
		{name: "budget", query: Query{PriceRange: PriceBudget}, want: []int64{2}},
		{name: "mid includes both bounds", query: Query{PriceRange: PriceMid}, want: []int64{1, 3, 5}},
		{name: "premium", query: Query{PriceRange: PricePremium}, want: []int64{4, 6}},
		{name: "conditions combine", query: Query{Color: "Pink", PriceRange: PriceMid}, want: []int64{1}},
		{name: "no match", query: Query{Text: "cactus"}, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(testProducts, tt.query)))
		})
	}
}

func TestSuggestions(t *testing.T) {
	assert.Empty(t, Suggestions(testProducts, "r"))
	assert.Equal(t, []int64{1, 4}, ids(Suggestions(testProducts, "ro")))

	many := make([]model.Product, 0, 10)
	for i := int64(1); i <= 10; i++ {
		many = append(many, product(i, "Rose", "", "", "10"))
	}
	assert.Len(t, Suggestions(many, "rose"), MaxSuggestions)
}

func TestPriceRangeValid(t *testing.T) {
	assert.True(t, PriceAll.Valid())
	assert.True(t, PricePremium.Valid())
	assert.False(t, PriceRange("cheap").Valid())
}
