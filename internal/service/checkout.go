package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mmeshcher/floran-storefront/internal/backend"
	"github.com/mmeshcher/floran-storefront/internal/model"
	"github.com/mmeshcher/floran-storefront/internal/pricing"
	"github.com/mmeshcher/floran-storefront/internal/validation"
)

// Quote содержит расчёт стоимости заказа для страницы оформления.
type Quote struct {
	pricing.Snapshot
	Lines          []model.CartLine   `json:"lines"`
	LoyaltyBalance int64              `json:"loyalty_balance"`
	Promo          *model.PromoResult `json:"promo,omitempty"`
	PromoError     string             `json:"promo_error,omitempty"`

	promoRejection error
}

// CheckoutForm содержит данные формы оформления заказа.
type CheckoutForm struct {
	Customer       model.Customer     `json:"customer"`
	Card           validation.Card    `json:"card"`
	DeliveryType   model.DeliveryType `json:"delivery_type"`
	DeliveryDate   string             `json:"delivery_date"`
	DeliveryTime   string             `json:"delivery_time"`
	IsRecurring    bool               `json:"is_recurring"`
	RecurrenceType string             `json:"recurrence_type,omitempty"`
	// Selection заменяет сохранённый в сессии выбор промокода и баллов, если задан.
	Selection *Selection `json:"selection,omitempty"`
}

// Quote запоминает выбор покупателя и рассчитывает стоимость заказа.
// Отказ сервера по промокоду не считается ошибкой: его текст возвращается в PromoError.
func (s *Service) Quote(ctx context.Context, sid string, sel Selection) (*Quote, error) {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	sess.selection = normalizeSelection(sel)

	return s.quote(ctx, sess, sess.selection.Email)
}

// PlaceOrder проверяет форму, заново рассчитывает стоимость и отправляет заказ.
// Корзина очищается только после подтверждения сервера.
func (s *Service) PlaceOrder(ctx context.Context, sid string, form CheckoutForm) (*model.OrderConfirmation, error) {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	if sess.cart.Empty() {
		return nil, ErrEmptyCart
	}

	now := s.now()
	if err := validation.ValidateCustomer(form.Customer); err != nil {
		return nil, err
	}
	deliveryAt, err := validation.ValidateDelivery(form.DeliveryType, form.DeliveryDate, form.DeliveryTime, now)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateCard(form.Card, now); err != nil {
		return nil, err
	}

	if form.Selection != nil {
		sess.selection = normalizeSelection(*form.Selection)
	}

	q, err := s.quote(ctx, sess, form.Customer.Email)
	if err != nil {
		return nil, err
	}
	if q.promoRejection != nil {
		return nil, q.promoRejection
	}

	req := buildOrderRequest(q, form, deliveryAt)

	conf, err := s.backend.PlaceOrder(ctx, req)
	if err != nil {
		if _, ok := backend.IsRejected(err); ok {
			return nil, err
		}
		s.logger.Error("place order error", zap.Error(err), zap.String("session", sid))
		return nil, fmt.Errorf("%w: %w", ErrOrderFailed, err)
	}

	s.logger.Info("order placed",
		zap.String("session", sid),
		zap.String("orderID", conf.OrderID),
		zap.String("total", q.GrandTotal.StringFixed(2)),
		zap.Int64("pointsRedeemed", q.PointsRedeemed),
	)

	sess.cart.Clear(ctx)
	sess.selection = Selection{}
	sess.toaster.Show("Order placed successfully!", model.ToastSuccess)
	return conf, nil
}

// quote выполняет расчёт в порядке: баланс баллов, расчёт без промокода,
// проверка промокода на сумме после списания баллов, итоговый расчёт.
func (s *Service) quote(ctx context.Context, sess *Session, email string) (*Quote, error) {
	if sess.cart.Empty() {
		return nil, ErrEmptyCart
	}
	if sess.user != nil {
		email = sess.user.Email
	}

	q := &Quote{
		Lines:          sess.cart.Lines(),
		LoyaltyBalance: s.loyaltyBalance(ctx, sess),
	}
	in := pricing.Input{
		Lines:           q.Lines,
		LoyaltyBalance:  q.LoyaltyBalance,
		RequestedPoints: sess.selection.Points,
	}
	q.Snapshot = pricing.Compute(in)

	code := sess.selection.PromoCode
	if code == "" {
		return q, nil
	}

	res, err := s.backend.ValidatePromo(ctx, code, q.PromoBase, email)
	if err != nil {
		if rej, ok := backend.IsRejected(err); ok {
			q.PromoError = rej.Detail
			q.promoRejection = rej
			return q, nil
		}
		return nil, err
	}
	if !res.Valid {
		rej := &backend.RejectedError{StatusCode: http.StatusBadRequest, Detail: "Invalid promo code"}
		if res.Description != "" {
			rej.Detail = res.Description
		}
		q.PromoError = rej.Detail
		q.promoRejection = rej
		return q, nil
	}
	if res.Code == "" {
		res.Code = code
	}

	in.PromoDiscount = res.DiscountAmount
	q.Snapshot = pricing.Compute(in)
	q.Promo = res
	return q, nil
}

// loyaltyBalance возвращает баланс баллов вошедшего покупателя.
// Отсутствие бонусного счёта и сбой связи дают нулевой баланс.
func (s *Service) loyaltyBalance(ctx context.Context, sess *Session) int64 {
	if sess.user == nil {
		return 0
	}

	acct, err := s.backend.GetLoyalty(ctx, sess.user.Email)
	if err != nil {
		var rej *backend.RejectedError
		if !errors.As(err, &rej) || rej.StatusCode != http.StatusNotFound {
			s.logger.Warn("fetch loyalty balance error", zap.Error(err), zap.String("session", sess.id))
		}
		return 0
	}
	return acct.PointsBalance
}

func buildOrderRequest(q *Quote, form CheckoutForm, deliveryAt *string) model.OrderRequest {
	items := make([]model.OrderItem, 0, len(q.Lines))
	for _, l := range q.Lines {
		items = append(items, model.OrderItem{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Price:     l.UnitPrice(),
			Quantity:  l.Quantity,
		})
	}

	deliveryType := form.DeliveryType
	if deliveryType == "" {
		deliveryType = model.DeliveryImmediate
	}

	req := model.OrderRequest{
		Items:            items,
		Total:            q.GrandTotal,
		Customer:         form.Customer,
		DeliveryType:     deliveryType,
		DeliveryDatetime: deliveryAt,
		PointsRedeemed:   q.PointsRedeemed,
		IsRecurring:      form.IsRecurring,
	}
	if q.Promo != nil {
		code := q.Promo.Code
		req.PromoCode = &code
	}
	if form.IsRecurring && form.RecurrenceType != "" {
		rt := form.RecurrenceType
		req.RecurrenceType = &rt
	}
	return req
}

func normalizeSelection(sel Selection) Selection {
	sel.PromoCode = strings.ToUpper(strings.TrimSpace(sel.PromoCode))
	sel.Email = strings.TrimSpace(sel.Email)
	if sel.Points < 0 {
		sel.Points = 0
	}
	return sel
}
