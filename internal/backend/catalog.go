package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mmeshcher/floran-storefront/internal/model"
)

// ListProducts возвращает каталог, при необходимости отфильтрованный по категории.
func (c *Client) ListProducts(ctx context.Context, category string) ([]model.Product, error) {
	var query url.Values
	if category != "" {
		query = url.Values{"category": {category}}
	}

	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", query, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct возвращает товар по идентификатору.
func (c *Client) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+strconv.FormatInt(id, 10), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetOffers возвращает сезонные акции и наборы.
func (c *Client) GetOffers(ctx context.Context) (*model.Offers, error) {
	var offers model.Offers
	if err := c.do(ctx, http.MethodGet, "/api/offers", nil, nil, &offers); err != nil {
		return nil, err
	}
	return &offers, nil
}
