package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mmeshcher/floran-storefront/internal/model"
)

type cartItemRequest struct {
	UserID    string `json:"user_id"`
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// GetCart возвращает сохранённую на сервере корзину пользователя.
func (c *Client) GetCart(ctx context.Context, userID string) ([]model.CartLine, error) {
	var lines []model.CartLine
	if err := c.do(ctx, http.MethodGet, "/api/cart", url.Values{"user_id": {userID}}, nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// UpsertCartItem устанавливает количество товара в серверной корзине.
func (c *Client) UpsertCartItem(ctx context.Context, userID string, productID int64, quantity int) error {
	req := cartItemRequest{UserID: userID, ProductID: productID, Quantity: quantity}
	return c.do(ctx, http.MethodPost, "/api/cart/item", nil, req, nil)
}

// RemoveCartItem удаляет товар из серверной корзины.
func (c *Client) RemoveCartItem(ctx context.Context, userID string, productID int64) error {
	path := "/api/cart/item/" + strconv.FormatInt(productID, 10)
	return c.do(ctx, http.MethodDelete, path, url.Values{"user_id": {userID}}, nil, nil)
}

// ClearCart очищает серверную корзину.
func (c *Client) ClearCart(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/api/cart/clear", url.Values{"user_id": {userID}}, nil, nil)
}
