// Package cart содержит хранилище корзины покупателя.
//
// Корзина гостя сохраняется в локальном хранилище сессии, корзина вошедшего
// пользователя синхронизируется с внешним API. Изменения применяются к памяти сразу;
// ошибки синхронизации журналируются и не откатывают изменение.
package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mmeshcher/floran-storefront/internal/localstore"
	"github.com/mmeshcher/floran-storefront/internal/model"
)

// ErrInvalidQuantity возвращается при попытке добавить товар в количестве меньше одного.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// Remote описывает серверную корзину вошедшего пользователя.
type Remote interface {
	GetCart(ctx context.Context, userID string) ([]model.CartLine, error)
	UpsertCartItem(ctx context.Context, userID string, productID int64, quantity int) error
	RemoveCartItem(ctx context.Context, userID string, productID int64) error
	ClearCart(ctx context.Context, userID string) error
}

// Local описывает локальное хранилище сессии, в котором живёт корзина гостя.
type Local interface {
	Load(ctx context.Context, key string, v any) (bool, error)
	Save(ctx context.Context, key string, v any) error
}

// Signal получает уведомление о добавлении товара.
type Signal interface {
	Trigger()
}

// Store хранит позиции корзины одной сессии. Все изменения сериализуются.
type Store struct {
	mu     sync.Mutex
	lines  []model.CartLine
	user   *model.User
	remote Remote
	local  Local
	pulse  Signal
	logger *zap.Logger
}

// NewStore создаёт пустую корзину. Наполняется вызовом SwitchIdentity.
func NewStore(remote Remote, local Local, pulse Signal, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		remote: remote,
		local:  local,
		pulse:  pulse,
		logger: logger,
	}
}

// SwitchIdentity отбрасывает текущие позиции и загружает корзину нового владельца:
// с сервера для вошедшего пользователя, из локального хранилища для гостя.
// Корзины не объединяются.
func (s *Store) SwitchIdentity(ctx context.Context, user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.user = nil
	if user != nil {
		u := *user
		s.user = &u
	}

	if s.user != nil {
		lines, err := s.remote.GetCart(ctx, s.user.ID)
		if err != nil {
			s.logger.Warn("fetch remote cart error", zap.Error(err), zap.String("userID", s.user.ID))
			return
		}
		s.lines = normalize(lines)
		return
	}

	var lines []model.CartLine
	if _, err := s.local.Load(ctx, localstore.KeyGuestCart, &lines); err != nil {
		s.logger.Warn("load guest cart error", zap.Error(err))
		return
	}
	s.lines = normalize(lines)
}

// Add добавляет товар: увеличивает количество существующей позиции
// или добавляет новую по текущей цене товара.
func (s *Store) Add(ctx context.Context, product model.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	newQuantity := quantity
	if i := s.indexOf(product.ID); i >= 0 {
		newQuantity = s.lines[i].Quantity + quantity
		s.lines[i].Quantity = newQuantity
	} else {
		s.lines = append(s.lines, model.CartLine{Product: product, Quantity: quantity})
	}

	s.persist(ctx, product.ID, newQuantity)
	if s.pulse != nil {
		s.pulse.Trigger()
	}
	return nil
}

// Remove удаляет позицию целиком.
func (s *Store) Remove(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remove(ctx, productID)
}

// SetQuantity заменяет количество. Количество меньше единицы равносильно удалению.
func (s *Store) SetQuantity(ctx context.Context, productID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.remove(ctx, productID)
		return
	}

	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	s.lines[i].Quantity = quantity
	s.persist(ctx, productID, quantity)
}

// Clear удаляет все позиции.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil

	if s.user != nil {
		if err := s.remote.ClearCart(ctx, s.user.ID); err != nil {
			s.logger.Warn("clear remote cart error", zap.Error(err), zap.String("userID", s.user.ID))
		}
		return
	}
	s.saveLocal(ctx)
}

// Lines возвращает копию текущих позиций.
func (s *Store) Lines() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.CartLine(nil), s.lines...)
}

// Total возвращает сумму позиций.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Amount())
	}
	return total
}

// Count возвращает суммарное количество товаров.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

// Empty сообщает, пуста ли корзина.
func (s *Store) Empty() bool {
	return s.Count() == 0
}

func (s *Store) indexOf(productID int64) int {
	for i, l := range s.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) remove(ctx context.Context, productID int64) {
	i := s.indexOf(productID)
	if i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}

	if s.user != nil {
		if err := s.remote.RemoveCartItem(ctx, s.user.ID, productID); err != nil {
			s.logger.Warn("remove remote cart item error", zap.Error(err),
				zap.String("userID", s.user.ID), zap.Int64("productID", productID))
		}
		return
	}
	s.saveLocal(ctx)
}

func (s *Store) persist(ctx context.Context, productID int64, quantity int) {
	if s.user != nil {
		if err := s.remote.UpsertCartItem(ctx, s.user.ID, productID, quantity); err != nil {
			s.logger.Warn("upsert remote cart item error", zap.Error(err),
				zap.String("userID", s.user.ID), zap.Int64("productID", productID))
		}
		return
	}
	s.saveLocal(ctx)
}

func (s *Store) saveLocal(ctx context.Context) {
	lines := s.lines
	if lines == nil {
		lines = []model.CartLine{}
	}
	if err := s.local.Save(ctx, localstore.KeyGuestCart, lines); err != nil {
		s.logger.Warn("save guest cart error", zap.Error(err))
	}
}

// normalize объединяет повторяющиеся товары и отбрасывает позиции с неположительным количеством.
func normalize(lines []model.CartLine) []model.CartLine {
	var res []model.CartLine
	seen := make(map[int64]int, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if i, ok := seen[l.Product.ID]; ok {
			res[i].Quantity += l.Quantity
			continue
		}
		seen[l.Product.ID] = len(res)
		res = append(res, l)
	}
	return res
}
