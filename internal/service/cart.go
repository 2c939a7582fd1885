package service

import (
	"context"

	"github.com/mmeshcher/floran-storefront/internal/cart"
	"github.com/mmeshcher/floran-storefront/internal/model"
)

// AddToCart добавляет товар в корзину по текущей цене каталога.
func (s *Service) AddToCart(ctx context.Context, sid string, productID int64, quantity int) (*View, error) {
	if quantity < 1 {
		return nil, cart.ErrInvalidQuantity
	}

	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	product, err := s.backend.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock {
		return nil, ErrOutOfStock
	}

	if err := sess.cart.Add(ctx, *product, quantity); err != nil {
		return nil, err
	}
	sess.toaster.Show(product.Name+" added to cart", model.ToastSuccess)
	return sess.view(), nil
}

// RemoveFromCart удаляет позицию из корзины.
func (s *Service) RemoveFromCart(ctx context.Context, sid string, productID int64) *View {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	sess.cart.Remove(ctx, productID)
	return sess.view()
}

// SetCartQuantity заменяет количество товара; количество меньше единицы удаляет позицию.
func (s *Service) SetCartQuantity(ctx context.Context, sid string, productID int64, quantity int) *View {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	sess.cart.SetQuantity(ctx, productID, quantity)
	return sess.view()
}

// ClearCart очищает корзину.
func (s *Service) ClearCart(ctx context.Context, sid string) *View {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	sess.cart.Clear(ctx)
	return sess.view()
}
