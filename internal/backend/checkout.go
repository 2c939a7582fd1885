package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/floran-storefront/internal/model"
)

type promoRequest struct {
	Code          string          `json:"code"`
	OrderTotal    decimal.Decimal `json:"order_total"`
	CustomerEmail *string         `json:"customer_email"`
}

// ValidatePromo проверяет промокод для указанной суммы заказа.
// Правила промокодов известны только серверу, поэтому сумма скидки берётся из ответа.
func (c *Client) ValidatePromo(ctx context.Context, code string, orderTotal decimal.Decimal, email string) (*model.PromoResult, error) {
	req := promoRequest{Code: code, OrderTotal: orderTotal}
	if email != "" {
		req.CustomerEmail = &email
	}

	var res model.PromoResult
	if err := c.do(ctx, http.MethodPost, "/api/promo/validate", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetLoyalty возвращает бонусный счёт покупателя.
func (c *Client) GetLoyalty(ctx context.Context, email string) (*model.LoyaltyAccount, error) {
	var acc model.LoyaltyAccount
	if err := c.do(ctx, http.MethodGet, "/api/loyalty", url.Values{"email": {email}}, nil, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// PlaceOrder оформляет заказ.
func (c *Client) PlaceOrder(ctx context.Context, req model.OrderRequest) (*model.OrderConfirmation, error) {
	var res model.OrderConfirmation
	if err := c.do(ctx, http.MethodPost, "/api/orders", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
