package pricing

import "github.com/shopspring/decimal"

// MinCorporateQuantity задаёт минимальный размер корпоративного заказа.
const MinCorporateQuantity = 5

// CorporateQuote содержит предварительный расчёт корпоративного заказа.
// Окончательную сумму назначает сервер.
type CorporateQuote struct {
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	DiscountPct int             `json:"discount_pct"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Savings     decimal.Decimal `json:"savings"`
	Total       decimal.Decimal `json:"total"`
}

// CorporateDiscountPct возвращает процент скидки для объёма корпоративного заказа.
func CorporateDiscountPct(quantity int) int {
	switch {
	case quantity >= 50:
		return 15
	case quantity >= 25:
		return 10
	case quantity >= 10:
		return 5
	default:
		return 0
	}
}

// QuoteCorporate рассчитывает стоимость корпоративного заказа с учётом объёмной скидки.
func QuoteCorporate(unitPrice decimal.Decimal, quantity int) CorporateQuote {
	if quantity < 0 {
		quantity = 0
	}

	pct := CorporateDiscountPct(quantity)
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	savings := subtotal.Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100)).Round(2)

	return CorporateQuote{
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		DiscountPct: pct,
		Subtotal:    subtotal,
		Savings:     savings,
		Total:       subtotal.Sub(savings),
	}
}
