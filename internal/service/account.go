package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/mmeshcher/floran-storefront/internal/backend"
	"github.com/mmeshcher/floran-storefront/internal/catalog"
	"github.com/mmeshcher/floran-storefront/internal/model"
	"github.com/mmeshcher/floran-storefront/internal/pricing"
	"github.com/mmeshcher/floran-storefront/internal/validation"
)

// Loyalty возвращает бонусный счёт покупателя. Отсутствующий счёт считается пустым.
func (s *Service) Loyalty(ctx context.Context, sid string) (*model.LoyaltyAccount, error) {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	if sess.user == nil {
		return nil, ErrUnauthenticated
	}

	acct, err := s.backend.GetLoyalty(ctx, sess.user.Email)
	if err != nil {
		var rej *backend.RejectedError
		if errors.As(err, &rej) && rej.StatusCode == http.StatusNotFound {
			return &model.LoyaltyAccount{UserEmail: sess.user.Email, Transactions: []model.LoyaltyTransaction{}}, nil
		}
		return nil, err
	}
	return acct, nil
}

// Offers возвращает сезонные акции и наборы. Одновременные запросы объединяются.
func (s *Service) Offers(ctx context.Context) (*model.Offers, error) {
	v, err, _ := s.group.Do("offers", func() (any, error) {
		return s.backend.GetOffers(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Offers), nil
}

// listProducts загружает каталог категории. Одновременные запросы объединяются,
// и отмена одного из них не прерывает загрузку для остальных.
func (s *Service) listProducts(ctx context.Context, category string) ([]model.Product, error) {
	v, err, _ := s.group.Do("products:"+category, func() (any, error) {
		return s.backend.ListProducts(context.WithoutCancel(ctx), category)
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Product), nil
}

// Products возвращает каталог категории, отфильтрованный по запросу.
func (s *Service) Products(ctx context.Context, category string, query catalog.Query) ([]model.Product, error) {
	if !query.PriceRange.Valid() {
		return nil, &validation.Error{Field: "price", Message: "Unknown price range"}
	}

	products, err := s.listProducts(ctx, category)
	if err != nil {
		return nil, err
	}
	if query.Empty() {
		return products, nil
	}
	return catalog.Filter(products, query), nil
}

// Suggestions возвращает подсказки поиска по всему каталогу.
func (s *Service) Suggestions(ctx context.Context, text string) ([]model.Product, error) {
	products, err := s.listProducts(ctx, "")
	if err != nil {
		return nil, err
	}
	return catalog.Suggestions(products, text), nil
}

// Product возвращает товар по идентификатору.
func (s *Service) Product(ctx context.Context, id int64) (*model.Product, error) {
	v, err, _ := s.group.Do("product:"+strconv.FormatInt(id, 10), func() (any, error) {
		return s.backend.GetProduct(context.WithoutCancel(ctx), id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Product), nil
}

// Orders возвращает историю заказов покупателя.
func (s *Service) Orders(ctx context.Context, sid string) ([]model.Order, error) {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	if sess.user == nil {
		return nil, ErrUnauthenticated
	}
	orders, err := s.backend.ListOrders(ctx, sess.user.Email)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// UpdateDelivery меняет способ и время доставки заказа.
func (s *Service) UpdateDelivery(ctx context.Context, sid, orderID string, deliveryType model.DeliveryType, date, clock string) error {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	if sess.user == nil {
		return ErrUnauthenticated
	}
	if deliveryType == "" {
		deliveryType = model.DeliveryImmediate
	}
	datetime, err := validation.ValidateDelivery(deliveryType, date, clock, s.now())
	if err != nil {
		return err
	}
	if err := s.backend.UpdateDelivery(ctx, orderID, deliveryType, datetime); err != nil {
		return err
	}
	sess.toaster.Show("Delivery updated", model.ToastSuccess)
	return nil
}

// CancelOrder отменяет заказ.
func (s *Service) CancelOrder(ctx context.Context, sid, orderID string) error {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	if sess.user == nil {
		return ErrUnauthenticated
	}
	if err := s.backend.CancelOrder(ctx, orderID); err != nil {
		return err
	}
	sess.toaster.Show("Order cancelled", model.ToastSuccess)
	return nil
}

// Subscriptions возвращает подписки покупателя.
func (s *Service) Subscriptions(ctx context.Context, sid string) ([]model.Subscription, error) {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	if sess.user == nil {
		return nil, ErrUnauthenticated
	}
	subs, err := s.backend.ListSubscriptions(ctx, sess.user.Email)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []model.Subscription{}
	}
	return subs, nil
}

// CreateSubscription оформляет подписку от имени вошедшего покупателя.
func (s *Service) CreateSubscription(ctx context.Context, sid string, req model.SubscriptionRequest) (*model.ScheduleUpdate, error) {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	if sess.user == nil {
		return nil, ErrUnauthenticated
	}
	if req.Plan == "" || req.Address == "" {
		return nil, &validation.Error{Field: "plan", Message: "Please choose a plan and delivery address"}
	}
	req.CustomerEmail = sess.user.Email
	req.CustomerName = sess.user.FullName()

	res, err := s.backend.CreateSubscription(ctx, req)
	if err != nil {
		return nil, err
	}
	sess.toaster.Show("Subscription created", model.ToastSuccess)
	return res, nil
}

// UpdateSubscription приостанавливает, возобновляет, пропускает или отменяет подписку.
func (s *Service) UpdateSubscription(ctx context.Context, sid, id string, action backend.SubscriptionAction) (*model.ScheduleUpdate, error) {
	if !action.Valid() {
		return nil, &validation.Error{Field: "action", Message: "Unknown subscription action"}
	}

	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	if sess.user == nil {
		return nil, ErrUnauthenticated
	}
	return s.backend.UpdateSubscription(ctx, id, action)
}

// CorporatePreview рассчитывает стоимость корпоративного заказа по текущей цене товара.
func (s *Service) CorporatePreview(ctx context.Context, productID int64, quantity int) (*pricing.CorporateQuote, error) {
	if quantity < pricing.MinCorporateQuantity {
		return nil, &validation.Error{Field: "quantity", Message: "Minimum order quantity is 5"}
	}

	product, err := s.Product(ctx, productID)
	if err != nil {
		return nil, err
	}
	quote := pricing.QuoteCorporate(product.Price, quantity)
	return &quote, nil
}

// CorporateOrders возвращает корпоративные заказы вошедшего покупателя.
func (s *Service) CorporateOrders(ctx context.Context, sid string) ([]model.CorporateOrder, error) {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	if sess.user == nil {
		return nil, ErrUnauthenticated
	}
	orders, err := s.backend.ListCorporateOrders(ctx, sess.user.Email)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.CorporateOrder{}
	}
	return orders, nil
}

// CreateCorporateOrder проверяет и отправляет корпоративный заказ.
// Название и цена товара берутся из каталога.
func (s *Service) CreateCorporateOrder(ctx context.Context, sid string, req model.CorporateOrderRequest) (*model.ScheduleUpdate, error) {
	if err := validation.ValidateCorporateOrder(req, s.now()); err != nil {
		return nil, err
	}

	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	product, err := s.backend.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	req.ProductName = product.Name
	req.UnitPrice = product.Price
	if req.IsRecurring {
		req.DeliveryDate = ""
	} else {
		req.RecurringDay = ""
		req.RecurringFrequency = ""
	}

	res, err := s.backend.CreateCorporateOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	sess.toaster.Show("Corporate order placed", model.ToastSuccess)
	return res, nil
}

// UpdateCorporateOrder отменяет корпоративный заказ или пропускает ближайшую доставку.
func (s *Service) UpdateCorporateOrder(ctx context.Context, sid, id string, action backend.CorporateAction) (*model.ScheduleUpdate, error) {
	if !action.Valid() {
		return nil, &validation.Error{Field: "action", Message: "Unknown corporate order action"}
	}

	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	if sess.user == nil {
		return nil, ErrUnauthenticated
	}
	return s.backend.UpdateCorporateOrder(ctx, id, action)
}

// Contact отправляет сообщение из формы обратной связи.
func (s *Service) Contact(ctx context.Context, sid string, req model.ContactRequest) error {
	if err := validation.ValidateContact(req); err != nil {
		return err
	}

	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	if err := s.backend.SubmitContact(ctx, req); err != nil {
		return err
	}
	sess.toaster.Show("Thank you! We will get back to you soon.", model.ToastSuccess)
	return nil
}
