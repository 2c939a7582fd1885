// Package localstore хранит локальные данные браузерной сессии по фиксированным ключам.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Фиксированные ключи локального хранилища.
const (
	KeyToken     = "floran_token"
	KeyUser      = "floran_user"
	KeyGuestCart = "floran_cart_guest"
	KeyWishlist  = "floran_wishlist"
	KeyBouquet   = "floran_bouquet"
)

// Retention задаёт срок хранения локальных данных сессии после последней записи.
// Данные переживают выгрузку сессии из памяти.
const Retention = 30 * 24 * time.Hour

// ErrNotFound возвращается, если по ключу ничего не сохранено.
var ErrNotFound = errors.New("local entry not found")

// Storage описывает хранилище значений, разделённое по сессиям.
type Storage interface {
	Get(ctx context.Context, sessionID, key string) ([]byte, error)
	Set(ctx context.Context, sessionID, key string, value []byte) error
	Remove(ctx context.Context, sessionID, key string) error
}

// Bucket представляет хранилище, привязанное к одной сессии.
type Bucket struct {
	storage   Storage
	sessionID string
}

// NewBucket возвращает представление хранилища для указанной сессии.
func NewBucket(storage Storage, sessionID string) *Bucket {
	return &Bucket{storage: storage, sessionID: sessionID}
}

// SessionID возвращает идентификатор сессии.
func (b *Bucket) SessionID() string {
	return b.sessionID
}

// Load читает JSON-значение по ключу в v. Возвращает false, если значения нет.
func (b *Bucket) Load(ctx context.Context, key string, v any) (bool, error) {
	raw, err := b.storage.Get(ctx, b.sessionID, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Save сохраняет v по ключу в виде JSON.
func (b *Bucket) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := b.storage.Set(ctx, b.sessionID, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Delete удаляет значение по ключу.
func (b *Bucket) Delete(ctx context.Context, key string) error {
	if err := b.storage.Remove(ctx, b.sessionID, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
