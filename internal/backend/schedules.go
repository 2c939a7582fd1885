package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mmeshcher/floran-storefront/internal/model"
)

// SubscriptionAction задаёт действие над подпиской.
type SubscriptionAction string

const (
	SubscriptionPause  SubscriptionAction = "pause"
	SubscriptionResume SubscriptionAction = "resume"
	SubscriptionSkip   SubscriptionAction = "skip"
	SubscriptionCancel SubscriptionAction = "cancel"
)

// Valid сообщает, поддерживается ли действие.
func (a SubscriptionAction) Valid() bool {
	switch a {
	case SubscriptionPause, SubscriptionResume, SubscriptionSkip, SubscriptionCancel:
		return true
	}
	return false
}

// CorporateAction задаёт действие над корпоративным заказом.
type CorporateAction string

const (
	CorporateCancel CorporateAction = "cancel"
	CorporateSkip   CorporateAction = "skip"
)

// Valid сообщает, поддерживается ли действие.
func (a CorporateAction) Valid() bool {
	return a == CorporateCancel || a == CorporateSkip
}

// ListSubscriptions возвращает подписки покупателя.
func (c *Client) ListSubscriptions(ctx context.Context, email string) ([]model.Subscription, error) {
	var subs []model.Subscription
	if err := c.do(ctx, http.MethodGet, "/api/subscriptions", url.Values{"email": {email}}, nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// CreateSubscription оформляет подписку.
func (c *Client) CreateSubscription(ctx context.Context, req model.SubscriptionRequest) (*model.ScheduleUpdate, error) {
	var res model.ScheduleUpdate
	if err := c.do(ctx, http.MethodPost, "/api/subscriptions", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateSubscription применяет действие к подписке.
func (c *Client) UpdateSubscription(ctx context.Context, id string, action SubscriptionAction) (*model.ScheduleUpdate, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("unknown subscription action %q", action)
	}

	var res model.ScheduleUpdate
	path := "/api/subscriptions/" + url.PathEscape(id) + "/" + string(action)
	if err := c.do(ctx, http.MethodPatch, path, nil, struct{}{}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListCorporateOrders возвращает корпоративные заказы контактного лица.
func (c *Client) ListCorporateOrders(ctx context.Context, email string) ([]model.CorporateOrder, error) {
	var orders []model.CorporateOrder
	if err := c.do(ctx, http.MethodGet, "/api/corporate-orders", url.Values{"email": {email}}, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateCorporateOrder оформляет корпоративный заказ.
func (c *Client) CreateCorporateOrder(ctx context.Context, req model.CorporateOrderRequest) (*model.ScheduleUpdate, error) {
	var res model.ScheduleUpdate
	if err := c.do(ctx, http.MethodPost, "/api/corporate-orders", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateCorporateOrder применяет действие к корпоративному заказу.
func (c *Client) UpdateCorporateOrder(ctx context.Context, id string, action CorporateAction) (*model.ScheduleUpdate, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("unknown corporate order action %q", action)
	}

	var res model.ScheduleUpdate
	path := "/api/corporate-orders/" + url.PathEscape(id) + "/" + string(action)
	if err := c.do(ctx, http.MethodPatch, path, nil, struct{}{}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
