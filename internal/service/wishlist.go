package service

import (
	"context"

	"github.com/mmeshcher/floran-storefront/internal/model"
)

// WishlistView отражает содержимое избранного.
type WishlistView struct {
	ProductIDs []int64 `json:"product_ids"`
	Count      int     `json:"count"`
}

func wishlistView(ids []int64) *WishlistView {
	if ids == nil {
		ids = []int64{}
	}
	return &WishlistView{ProductIDs: ids, Count: len(ids)}
}

// Wishlist возвращает избранное сессии.
func (s *Service) Wishlist(ctx context.Context, sid string) *WishlistView {
	sess, _ := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	return wishlistView(sess.wishlist.IDs())
}

// ToggleWishlist добавляет товар в избранное или убирает его оттуда.
func (s *Service) ToggleWishlist(ctx context.Context, sid string, productID int64) (*WishlistView, bool, error) {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	added, err := sess.wishlist.Toggle(ctx, productID)
	if err != nil {
		return nil, false, err
	}
	if added {
		sess.toaster.Show("Added to wishlist", model.ToastSuccess)
	} else {
		sess.toaster.Show("Removed from wishlist", model.ToastSuccess)
	}
	return wishlistView(sess.wishlist.IDs()), added, nil
}

// RemoveFromWishlist убирает товар из избранного.
func (s *Service) RemoveFromWishlist(ctx context.Context, sid string, productID int64) (*WishlistView, error) {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	if err := sess.wishlist.Remove(ctx, productID); err != nil {
		return nil, err
	}
	return wishlistView(sess.wishlist.IDs()), nil
}

// ClearWishlist очищает избранное.
func (s *Service) ClearWishlist(ctx context.Context, sid string) (*WishlistView, error) {
	sess, ctx := s.acquire(ctx, sid)
	defer sess.mu.Unlock()

	if err := sess.wishlist.Clear(ctx); err != nil {
		return nil, err
	}
	return wishlistView(nil), nil
}
