package bouquet

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/floran-storefront/internal/model"
)

var (
	rose  = model.Product{ID: 1, Name: "Rose", Price: decimal.RequireFromString("4.50"), Image: "rose.jpg"}
	tulip = model.Product{ID: 2, Name: "Tulip", Price: decimal.RequireFromString("3.25")}
)

func TestTotal(t *testing.T) {
	tests := []struct {
		name  string
		size  Size
		build func(d *Design)
		want  string
	}{
		{name: "empty medium is the base price", size: SizeMedium, build: func(d *Design) {}, want: "14.99"},
		{name: "empty small", size: SizeSmall, build: func(d *Design) {}, want: "9.99"},
		{
			name: "flowers plus large base",
			size: SizeLarge,
			build: func(d *Design) {
				d.AddFlower(rose)
				d.AddFlower(rose)
				d.AddFlower(tulip)
			},
			want: "37.24",
		},
		{
			name: "count update is priced",
			size: SizeMedium,
			build: func(d *Design) {
				d.AddFlower(tulip)
				d.UpdateCount(tulip.ID, 3)
			},
			want: "27.99",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDesign()
			require.NoError(t, d.SetSize(tt.size))
			tt.build(&d)
			assert.Equal(t, tt.want, d.Total().StringFixed(2))
		})
	}
}

func TestFlowers(t *testing.T) {
	d := NewDesign()
	d.AddFlower(rose)
	d.AddFlower(tulip)
	d.AddFlower(rose)

	require.Len(t, d.Flowers, 2)
	assert.Equal(t, 2, d.Flowers[0].Count)
	assert.Equal(t, 3, d.FlowerCount())

	d.UpdateCount(rose.ID, -1)
	assert.Equal(t, 1, d.Flowers[0].Count)

	d.UpdateCount(rose.ID, -1)
	require.Len(t, d.Flowers, 1)
	assert.Equal(t, tulip.ID, d.Flowers[0].ProductID)

	d.UpdateCount(tulip.ID, -5)
	assert.True(t, d.Empty())

	d.AddFlower(tulip)
	d.RemoveFlower(tulip.ID)
	d.RemoveFlower(99)
	assert.True(t, d.Empty())
}

func TestSetters(t *testing.T) {
	d := NewDesign()

	assert.ErrorIs(t, d.SetStyle("spiral"), ErrUnknownStyle)
	assert.ErrorIs(t, d.SetSize("huge"), ErrUnknownSize)
	assert.ErrorIs(t, d.SetWrapping("Neon"), ErrUnknownWrapping)
	assert.Equal(t, NewDesign(), d)

	require.NoError(t, d.SetStyle(StyleHandTied))
	require.NoError(t, d.SetSize(SizeSmall))
	require.NoError(t, d.SetWrapping("sage green"))
	assert.Equal(t, StyleHandTied, d.Style)
	assert.Equal(t, SizeSmall, d.Size)
	assert.Equal(t, "Sage Green", d.WrappingName)
	assert.Equal(t, "#c8e6c9", d.WrappingColor)
}

func TestCartProduct(t *testing.T) {
	d := NewDesign()
	_, err := d.CartProduct(1)
	assert.ErrorIs(t, err, ErrEmptyDesign)

	d.AddFlower(rose)
	d.AddFlower(rose)
	d.AddFlower(tulip)
	require.NoError(t, d.SetStyle(StyleCascading))

	p, err := d.CartProduct(1773532800000)
	require.NoError(t, err)
	assert.Equal(t, int64(1773532800000), p.ID)
	assert.Equal(t, "Custom Cascading Bouquet", p.Name)
	assert.Equal(t, "Medium bouquet: 2x Rose, 1x Tulip. Wrapped in Blush Pink.", p.Description)
	assert.Equal(t, "27.24", p.Price.StringFixed(2))
	assert.Equal(t, "rose.jpg", p.Image)
	assert.Equal(t, "Bouquets", p.Category)
	assert.True(t, p.InStock)

	d = NewDesign()
	d.AddFlower(tulip)
	p, err = d.CartProduct(2)
	require.NoError(t, err)
	assert.Equal(t, DefaultImage, p.Image)
}

func TestShareCode(t *testing.T) {
	d := NewDesign()
	d.AddFlower(rose)
	require.NoError(t, d.SetSize(SizeLarge))
	require.NoError(t, d.SetWrapping("Lilac"))

	code, err := d.Encode()
	require.NoError(t, err)

	got, err := Decode(code)
	require.NoError(t, err)
	assert.Equal(t, d.Size, got.Size)
	assert.Equal(t, d.WrappingName, got.WrappingName)
	require.Len(t, got.Flowers, 1)
	assert.True(t, d.Total().Equal(got.Total()))
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		code string
		want error
	}{
		{name: "not base64", code: "%%%", want: ErrInvalidShareCode},
		{name: "not json", code: "bm90IGpzb24", want: ErrInvalidShareCode},
		{name: "unknown style", code: encodeRaw(t, `{"style":"spiral","size":"small","wrapping_name":"Ivory"}`), want: ErrUnknownStyle},
		{name: "unknown size", code: encodeRaw(t, `{"style":"posy","size":"xl","wrapping_name":"Ivory"}`), want: ErrUnknownSize},
		{name: "unknown wrapping", code: encodeRaw(t, `{"style":"posy","size":"small","wrapping_name":"Gold"}`), want: ErrUnknownWrapping},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.code)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeDropsBrokenFlowers(t *testing.T) {
	code := encodeRaw(t, `{"style":"posy","size":"small","wrapping_name":"Ivory","wrapping_color":"#000000",`+
		`"flowers":[{"product_id":1,"name":"Rose","price":4.5,"count":2},{"product_id":2,"name":"Tulip","price":3,"count":0}]}`)

	d, err := Decode(code)
	require.NoError(t, err)
	require.Len(t, d.Flowers, 1)
	assert.Equal(t, "#f5f0e8", d.WrappingColor)
	assert.Equal(t, "18.99", d.Total().StringFixed(2))
}
