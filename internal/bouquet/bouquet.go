// Package bouquet содержит конструктор букета: состав, оформление и расчёт цены.
package bouquet

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/floran-storefront/internal/model"
)

var (
	ErrUnknownStyle     = errors.New("unknown arrangement style")
	ErrUnknownSize      = errors.New("unknown bouquet size")
	ErrUnknownWrapping  = errors.New("unknown wrapping")
	ErrEmptyDesign      = errors.New("bouquet has no flowers")
	ErrInvalidShareCode = errors.New("invalid share code")
)

// Style задаёт форму букета.
type Style string

const (
	StyleRound     Style = "round"
	StyleCascading Style = "cascading"
	StylePosy      Style = "posy"
	StyleHandTied  Style = "hand-tied"
)

// Size задаёт размер букета.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// StyleOption описывает форму букета для интерфейса.
type StyleOption struct {
	ID          Style  `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// SizeOption описывает размер букета и его базовую цену.
type SizeOption struct {
	ID        Size            `json:"id"`
	Label     string          `json:"label"`
	Flowers   string          `json:"flowers"`
	BasePrice decimal.Decimal `json:"base_price"`
}

// Wrapping описывает упаковку.
type Wrapping struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Options объединяет доступные варианты оформления.
type Options struct {
	Styles    []StyleOption `json:"styles"`
	Sizes     []SizeOption  `json:"sizes"`
	Wrappings []Wrapping    `json:"wrappings"`
}

var styles = []StyleOption{
	{ID: StyleRound, Label: "Round", Description: "Classic circular shape"},
	{ID: StyleCascading, Label: "Cascade", Description: "Flowing waterfall style"},
	{ID: StylePosy, Label: "Posy", Description: "Small compact bunch"},
	{ID: StyleHandTied, Label: "Hand Tied", Description: "Natural rustic look"},
}

var sizes = []SizeOption{
	{ID: SizeSmall, Label: "Petite", Flowers: "3-5", BasePrice: decimal.RequireFromString("9.99")},
	{ID: SizeMedium, Label: "Classic", Flowers: "6-10", BasePrice: decimal.RequireFromString("14.99")},
	{ID: SizeLarge, Label: "Grand", Flowers: "11-20", BasePrice: decimal.RequireFromString("24.99")},
}

var wrappings = []Wrapping{
	{Name: "Blush Pink", Color: "#f8bbd0"},
	{Name: "Ivory", Color: "#f5f0e8"},
	{Name: "Sage Green", Color: "#c8e6c9"},
	{Name: "Sky Blue", Color: "#bbdefb"},
	{Name: "Lilac", Color: "#e1bee7"},
	{Name: "Kraft Brown", Color: "#d7c5a0"},
	{Name: "Crimson", Color: "#b71c1c"},
	{Name: "Charcoal", Color: "#424242"},
}

// DefaultImage показывается у букета без цветов с картинкой.
const DefaultImage = "https://images.unsplash.com/photo-1487530811176-3780de880c2d?w=400"

// AvailableOptions возвращает варианты оформления.
func AvailableOptions() Options {
	return Options{
		Styles:    append([]StyleOption(nil), styles...),
		Sizes:     append([]SizeOption(nil), sizes...),
		Wrappings: append([]Wrapping(nil), wrappings...),
	}
}

// BasePrice возвращает базовую цену размера.
func BasePrice(size Size) (decimal.Decimal, bool) {
	for _, s := range sizes {
		if s.ID == size {
			return s.BasePrice, true
		}
	}
	return decimal.Zero, false
}

func validStyle(style Style) bool {
	for _, s := range styles {
		if s.ID == style {
			return true
		}
	}
	return false
}

func findWrapping(name string) (Wrapping, bool) {
	for _, w := range wrappings {
		if strings.EqualFold(w.Name, name) {
			return w, true
		}
	}
	return Wrapping{}, false
}

// Flower описывает цветок в составе букета. Цена фиксируется при добавлении.
type Flower struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Count     int             `json:"count"`
}

// Design описывает собираемый букет.
type Design struct {
	Flowers       []Flower `json:"flowers"`
	Style         Style    `json:"style"`
	WrappingColor string   `json:"wrapping_color"`
	WrappingName  string   `json:"wrapping_name"`
	Size          Size     `json:"size"`
}

// NewDesign возвращает пустой букет среднего размера в круглой форме и розовой упаковке.
func NewDesign() Design {
	return Design{
		Flowers:       []Flower{},
		Style:         StyleRound,
		WrappingColor: wrappings[0].Color,
		WrappingName:  wrappings[0].Name,
		Size:          SizeMedium,
	}
}

// Total возвращает цену букета: сумма цветов и базовая цена размера.
func (d *Design) Total() decimal.Decimal {
	total, _ := BasePrice(d.Size)
	for _, f := range d.Flowers {
		total = total.Add(f.Price.Mul(decimal.NewFromInt(int64(f.Count))))
	}
	return total.Round(2)
}

// FlowerCount возвращает общее число цветов.
func (d *Design) FlowerCount() int {
	n := 0
	for _, f := range d.Flowers {
		n += f.Count
	}
	return n
}

// Empty сообщает, что в букете нет цветов.
func (d *Design) Empty() bool {
	return len(d.Flowers) == 0
}

func (d *Design) indexOf(productID int64) int {
	for i, f := range d.Flowers {
		if f.ProductID == productID {
			return i
		}
	}
	return -1
}

// AddFlower добавляет один цветок. Повторное добавление увеличивает количество.
func (d *Design) AddFlower(p model.Product) {
	if i := d.indexOf(p.ID); i >= 0 {
		d.Flowers[i].Count++
		return
	}
	d.Flowers = append(d.Flowers, Flower{
		ProductID: p.ID,
		Name:      p.Name,
		Image:     p.Image,
		Price:     p.Price,
		Count:     1,
	})
}

// RemoveFlower убирает цветок из букета.
func (d *Design) RemoveFlower(productID int64) {
	if i := d.indexOf(productID); i >= 0 {
		d.Flowers = append(d.Flowers[:i], d.Flowers[i+1:]...)
	}
}

// UpdateCount меняет количество цветка на delta. Количество ноль и меньше убирает цветок.
func (d *Design) UpdateCount(productID int64, delta int) {
	i := d.indexOf(productID)
	if i < 0 {
		return
	}
	d.Flowers[i].Count += delta
	if d.Flowers[i].Count <= 0 {
		d.RemoveFlower(productID)
	}
}

// SetStyle меняет форму букета.
func (d *Design) SetStyle(style Style) error {
	if !validStyle(style) {
		return ErrUnknownStyle
	}
	d.Style = style
	return nil
}

// SetSize меняет размер букета.
func (d *Design) SetSize(size Size) error {
	if _, ok := BasePrice(size); !ok {
		return ErrUnknownSize
	}
	d.Size = size
	return nil
}

// SetWrapping выбирает упаковку по названию из палитры.
func (d *Design) SetWrapping(name string) error {
	w, ok := findWrapping(name)
	if !ok {
		return ErrUnknownWrapping
	}
	d.WrappingName = w.Name
	d.WrappingColor = w.Color
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// CartProduct превращает букет в товар корзины с указанным идентификатором.
func (d *Design) CartProduct(id int64) (model.Product, error) {
	if d.Empty() {
		return model.Product{}, ErrEmptyDesign
	}

	parts := make([]string, 0, len(d.Flowers))
	for _, f := range d.Flowers {
		parts = append(parts, fmt.Sprintf("%dx %s", f.Count, f.Name))
	}

	image := d.Flowers[0].Image
	if image == "" {
		image = DefaultImage
	}

	return model.Product{
		ID:          id,
		Name:        fmt.Sprintf("Custom %s Bouquet", capitalize(string(d.Style))),
		Description: fmt.Sprintf("%s bouquet: %s. Wrapped in %s.", capitalize(string(d.Size)), strings.Join(parts, ", "), d.WrappingName),
		Price:       d.Total(),
		Image:       image,
		Category:    "Bouquets",
		InStock:     true,
	}, nil
}

// Encode упаковывает букет в код для ссылки.
func (d *Design) Encode() (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("marshal design: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode восстанавливает букет из кода ссылки. Цветы без количества отбрасываются.
func Decode(code string) (Design, error) {
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(code))
	if err != nil {
		return Design{}, ErrInvalidShareCode
	}

	var d Design
	if err := json.Unmarshal(data, &d); err != nil {
		return Design{}, ErrInvalidShareCode
	}
	if !validStyle(d.Style) {
		return Design{}, ErrUnknownStyle
	}
	if _, ok := BasePrice(d.Size); !ok {
		return Design{}, ErrUnknownSize
	}
	w, ok := findWrapping(d.WrappingName)
	if !ok {
		return Design{}, ErrUnknownWrapping
	}
	d.WrappingName, d.WrappingColor = w.Name, w.Color

	flowers := make([]Flower, 0, len(d.Flowers))
	for _, f := range d.Flowers {
		if f.Count > 0 && f.ProductID > 0 && !f.Price.IsNegative() {
			flowers = append(flowers, f)
		}
	}
	d.Flowers = flowers
	return d, nil
}
