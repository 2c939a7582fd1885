package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mmeshcher/floran-storefront/internal/model"
)

type deliveryRequest struct {
	DeliveryType     model.DeliveryType `json:"delivery_type"`
	DeliveryDatetime *string            `json:"delivery_datetime"`
}

// ListOrders возвращает историю заказов покупателя, начиная с последнего.
func (c *Client) ListOrders(ctx context.Context, email string) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", url.Values{"email": {email}}, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateDelivery меняет способ и время доставки заказа.
func (c *Client) UpdateDelivery(ctx context.Context, orderID string, deliveryType model.DeliveryType, datetime *string) error {
	req := deliveryRequest{DeliveryType: deliveryType, DeliveryDatetime: datetime}
	return c.do(ctx, http.MethodPatch, "/api/orders/"+url.PathEscape(orderID)+"/delivery", nil, req, nil)
}

// CancelOrder отменяет заказ.
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodPatch, "/api/orders/"+url.PathEscape(orderID)+"/cancel", nil, struct{}{}, nil)
}
