// Package wishlist хранит избранные товары сессии.
package wishlist

import (
	"context"
	"slices"
	"sync"

	"github.com/mmeshcher/floran-storefront/internal/localstore"
)

// Local описывает локальное хранилище сессии.
type Local interface {
	Load(ctx context.Context, key string, v any) (bool, error)
	Save(ctx context.Context, key string, v any) error
}

// List хранит упорядоченный набор идентификаторов избранных товаров.
type List struct {
	mu    sync.Mutex
	ids   []int64
	local Local
}

// Load читает избранное из локального хранилища. Нечитаемые данные дают пустой список.
func Load(ctx context.Context, local Local) (*List, error) {
	l := &List{local: local}

	var ids []int64
	if _, err := local.Load(ctx, localstore.KeyWishlist, &ids); err != nil {
		return l, err
	}
	l.ids = ids
	return l, nil
}

// Toggle добавляет товар или убирает его, если он уже в избранном. Возвращает новое состояние.
func (l *List) Toggle(ctx context.Context, productID int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := slices.Index(l.ids, productID); i >= 0 {
		l.ids = slices.Delete(l.ids, i, i+1)
		return false, l.save(ctx)
	}
	l.ids = append(l.ids, productID)
	return true, l.save(ctx)
}

// Remove убирает товар из избранного.
func (l *List) Remove(ctx context.Context, productID int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.ids = slices.DeleteFunc(l.ids, func(id int64) bool { return id == productID })
	return l.save(ctx)
}

// Clear очищает избранное.
func (l *List) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.ids = nil
	return l.save(ctx)
}

// Has сообщает, находится ли товар в избранном.
func (l *List) Has(productID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Contains(l.ids, productID)
}

// IDs возвращает копию списка.
func (l *List) IDs() []int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]int64{}, l.ids...)
}

// Count возвращает число товаров в избранном.
func (l *List) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ids)
}

func (l *List) save(ctx context.Context) error {
	ids := l.ids
	if ids == nil {
		ids = []int64{}
	}
	return l.local.Save(ctx, localstore.KeyWishlist, ids)
}
