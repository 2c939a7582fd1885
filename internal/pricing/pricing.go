// Package pricing рассчитывает итоговую стоимость заказа на этапе оформления.
//
// Все функции пакета чистые: результат зависит только от аргументов.
// Скидка по промокоду в расчёт не вычисляется, а передаётся готовой суммой от сервера.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/floran-storefront/internal/model"
)

// PointsPerUnit задаёт, сколько бонусных баллов соответствует одной денежной единице.
const PointsPerUnit = 10

var (
	// FreeShippingThreshold задаёт сумму корзины, начиная с которой доставка бесплатна.
	FreeShippingThreshold = decimal.NewFromInt(50)
	// FlatShippingFee задаёт стоимость доставки ниже порога.
	FlatShippingFee = decimal.RequireFromString("9.99")
	// MaxRedemptionShare ограничивает долю суммы заказа, оплачиваемую баллами.
	MaxRedemptionShare = decimal.RequireFromString("0.20")

	pointsPerUnit = decimal.NewFromInt(PointsPerUnit)
)

// Input содержит известные на момент расчёта входные данные.
type Input struct {
	Lines           []model.CartLine
	LoyaltyBalance  int64
	RequestedPoints int64
	// PromoDiscount содержит сумму скидки, которую вернул сервер при проверке промокода.
	PromoDiscount decimal.Decimal
}

// Snapshot содержит результат расчёта. Не хранится, пересчитывается при каждом изменении входных данных.
type Snapshot struct {
	Subtotal         decimal.Decimal `json:"subtotal"`
	Shipping         decimal.Decimal `json:"shipping"`
	PreDiscountTotal decimal.Decimal `json:"pre_discount_total"`
	RedemptionCap    int64           `json:"redemption_cap"`
	PointsRedeemed   int64           `json:"points_redeemed"`
	LoyaltyDiscount  decimal.Decimal `json:"loyalty_discount"`
	PromoBase        decimal.Decimal `json:"promo_base"`
	PromoDiscount    decimal.Decimal `json:"promo_discount"`
	GrandTotal       decimal.Decimal `json:"grand_total"`
}

// Subtotal возвращает сумму позиций корзины.
func Subtotal(lines []model.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Amount())
	}
	return sum
}

// ShippingFee возвращает стоимость доставки для указанной суммы корзины.
func ShippingFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FlatShippingFee
}

// RedemptionCap возвращает максимальное число баллов, которое можно списать:
// min(balance, floor(total × 0.20) × 10).
func RedemptionCap(balance int64, preDiscountTotal decimal.Decimal) int64 {
	if balance <= 0 || !preDiscountTotal.IsPositive() {
		return 0
	}

	limit := preDiscountTotal.Mul(MaxRedemptionShare).Floor().IntPart() * PointsPerUnit
	if balance < limit {
		return balance
	}
	return limit
}

// ClampPoints приводит запрошенное число баллов к диапазону [0, limit].
func ClampPoints(requested, limit int64) int64 {
	if requested <= 0 || limit <= 0 {
		return 0
	}
	if requested > limit {
		return limit
	}
	return requested
}

// PointsValue переводит баллы в денежную сумму с округлением до копеек.
func PointsValue(points int64) decimal.Decimal {
	if points <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(points).Div(pointsPerUnit).Round(2)
}

// Compute выполняет расчёт в фиксированном порядке: сумма корзины, доставка,
// списание баллов, промокод, итог. Каждый шаг опирается на промежуточный итог предыдущего.
func Compute(in Input) Snapshot {
	var s Snapshot

	s.Subtotal = Subtotal(in.Lines)
	s.Shipping = ShippingFee(s.Subtotal)
	s.PreDiscountTotal = s.Subtotal.Add(s.Shipping)

	s.RedemptionCap = RedemptionCap(in.LoyaltyBalance, s.PreDiscountTotal)
	s.PointsRedeemed = ClampPoints(in.RequestedPoints, s.RedemptionCap)
	s.LoyaltyDiscount = PointsValue(s.PointsRedeemed)

	s.PromoBase = s.PreDiscountTotal.Sub(s.LoyaltyDiscount)

	s.PromoDiscount = decimal.Zero
	if in.PromoDiscount.IsPositive() {
		s.PromoDiscount = in.PromoDiscount
	}

	s.GrandTotal = s.PromoBase.Sub(s.PromoDiscount)
	if s.GrandTotal.IsNegative() {
		s.GrandTotal = decimal.Zero
	}

	return s
}
