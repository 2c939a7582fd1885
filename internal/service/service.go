// Package service реализует бизнес-логику витрины: сессии покупателей,
// корзину, расчёт и оформление заказа, личный кабинет.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/mmeshcher/floran-storefront/internal/backend"
	"github.com/mmeshcher/floran-storefront/internal/cart"
	"github.com/mmeshcher/floran-storefront/internal/localstore"
	"github.com/mmeshcher/floran-storefront/internal/model"
)

var (
	// ErrUnauthenticated возвращается операциями, доступными только вошедшему покупателю.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrEmptyCart возвращается при попытке оформить пустую корзину.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrOrderFailed возвращается, если заказ не удалось отправить из-за сбоя связи.
	ErrOrderFailed = errors.New("order could not be placed")
	// ErrOutOfStock возвращается при добавлении в корзину отсутствующего товара.
	ErrOutOfStock = errors.New("product is out of stock")
)

// DefaultIdleTTL задаёт время простоя, после которого сессия выгружается из памяти.
const DefaultIdleTTL = 30 * time.Minute

// storageRetention задаёт срок хранения локальных данных сессий в долговременном хранилище.
const storageRetention = localstore.Retention

// Backend описывает внешний API магазина, используемый сервисом.
type Backend interface {
	cart.Remote

	Login(ctx context.Context, email, password string) (*backend.AuthResult, error)
	Register(ctx context.Context, req backend.RegisterRequest) (*backend.AuthResult, error)
	SubmitContact(ctx context.Context, req model.ContactRequest) error

	ListProducts(ctx context.Context, category string) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	GetOffers(ctx context.Context) (*model.Offers, error)

	ValidatePromo(ctx context.Context, code string, orderTotal decimal.Decimal, email string) (*model.PromoResult, error)
	GetLoyalty(ctx context.Context, email string) (*model.LoyaltyAccount, error)
	PlaceOrder(ctx context.Context, req model.OrderRequest) (*model.OrderConfirmation, error)

	ListOrders(ctx context.Context, email string) ([]model.Order, error)
	UpdateDelivery(ctx context.Context, orderID string, deliveryType model.DeliveryType, datetime *string) error
	CancelOrder(ctx context.Context, orderID string) error

	ListSubscriptions(ctx context.Context, email string) ([]model.Subscription, error)
	CreateSubscription(ctx context.Context, req model.SubscriptionRequest) (*model.ScheduleUpdate, error)
	UpdateSubscription(ctx context.Context, id string, action backend.SubscriptionAction) (*model.ScheduleUpdate, error)

	ListCorporateOrders(ctx context.Context, email string) ([]model.CorporateOrder, error)
	CreateCorporateOrder(ctx context.Context, req model.CorporateOrderRequest) (*model.ScheduleUpdate, error)
	UpdateCorporateOrder(ctx context.Context, id string, action backend.CorporateAction) (*model.ScheduleUpdate, error)
}

// Purger реализуется хранилищами, которые умеют удалять устаревшие данные сессий.
type Purger interface {
	PurgeStale(ctx context.Context, maxAge time.Duration) (int64, error)
}

// Service содержит бизнес-логику витрины.
type Service struct {
	backend Backend
	storage localstore.Storage
	logger  *zap.Logger
	idleTTL time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session

	group     singleflight.Group
	lastPurge time.Time
}

// NewService создаёт сервис поверх внешнего API и хранилища локальных данных сессий.
func NewService(b Backend, storage localstore.Storage, logger *zap.Logger, idleTTL time.Duration) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Service{
		backend:  b,
		storage:  storage,
		logger:   logger,
		idleTTL:  idleTTL,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Close останавливает таймеры всех сессий и выгружает их из памяти.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		sess.stop()
		delete(s.sessions, id)
	}
	return nil
}

// ActiveSessions возвращает число сессий в памяти.
func (s *Service) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// StartJanitor запускает фоновую выгрузку простаивающих сессий.
func (s *Service) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.evictIdle()
				s.purgeStorage(ctx)
			}
		}
	}()
}

// evictIdle выгружает сессии, к которым не обращались дольше idleTTL.
// Сессии, занятые запросом, пропускаются до следующего прохода.
// lastSeen обновляется под s.mu, поэтому только что выданная сессия не считается простаивающей.
func (s *Service) evictIdle() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) <= s.idleTTL || !sess.mu.TryLock() {
			continue
		}
		sess.stop()
		delete(s.sessions, id)
		evicted++
		sess.mu.Unlock()
	}

	if evicted > 0 {
		s.logger.Info("idle sessions evicted", zap.Int("count", evicted), zap.Int("remaining", len(s.sessions)))
	}
	return evicted
}

func (s *Service) purgeStorage(ctx context.Context) {
	p, ok := s.storage.(Purger)
	if !ok {
		return
	}

	now := s.now()
	if now.Sub(s.lastPurge) < time.Hour {
		return
	}
	s.lastPurge = now

	n, err := p.PurgeStale(ctx, storageRetention)
	if err != nil {
		s.logger.Warn("purge stale local storage error", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("stale local storage purged", zap.Int64("rows", n))
	}
}
