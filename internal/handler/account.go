package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/floran-storefront/internal/backend"
	"github.com/mmeshcher/floran-storefront/internal/catalog"
	"github.com/mmeshcher/floran-storefront/internal/model"
)

// ListProducts возвращает каталог. Параметры category, q, occasion, color и price
// сужают выборку.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := catalog.Query{
		Text:       params.Get("q"),
		Occasion:   params.Get("occasion"),
		Color:      params.Get("color"),
		PriceRange: catalog.PriceRange(params.Get("price")),
	}

	products, err := h.service.Products(r.Context(), params.Get("category"), query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// SearchSuggestions возвращает подсказки для строки поиска q.
func (h *Handler) SearchSuggestions(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Suggestions(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProduct возвращает товар.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	product, err := h.service.Product(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// GetOffers возвращает сезонные акции и наборы.
func (h *Handler) GetOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.service.Offers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, offers)
}

// GetLoyalty возвращает бонусный счёт покупателя.
func (h *Handler) GetLoyalty(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	acct, err := h.service.Loyalty(r.Context(), sid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

// ListOrders возвращает историю заказов.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	orders, err := h.service.Orders(r.Context(), sid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

type deliveryRequest struct {
	DeliveryType model.DeliveryType `json:"delivery_type"`
	DeliveryDate string             `json:"delivery_date"`
	DeliveryTime string             `json:"delivery_time"`
}

// UpdateDelivery меняет доставку заказа.
func (h *Handler) UpdateDelivery(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req deliveryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.service.UpdateDelivery(r.Context(), sid, chi.URLParam(r, "orderID"), req.DeliveryType, req.DeliveryDate, req.DeliveryTime)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CancelOrder отменяет заказ.
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.service.CancelOrder(r.Context(), sid, chi.URLParam(r, "orderID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSubscriptions возвращает подписки покупателя.
func (h *Handler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	subs, err := h.service.Subscriptions(r.Context(), sid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

// CreateSubscription оформляет подписку.
func (h *Handler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req model.SubscriptionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.service.CreateSubscription(r.Context(), sid, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// UpdateSubscription применяет действие из пути к подписке.
func (h *Handler) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	action := backend.SubscriptionAction(chi.URLParam(r, "action"))
	res, err := h.service.UpdateSubscription(r.Context(), sid, chi.URLParam(r, "subscriptionID"), action)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type corporatePreviewRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CorporatePreview рассчитывает стоимость корпоративного заказа.
func (h *Handler) CorporatePreview(w http.ResponseWriter, r *http.Request) {
	var req corporatePreviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID <= 0 {
		h.badRequest(w, "Invalid product id")
		return
	}

	quote, err := h.service.CorporatePreview(r.Context(), req.ProductID, req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// ListCorporateOrders возвращает корпоративные заказы покупателя.
func (h *Handler) ListCorporateOrders(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	orders, err := h.service.CorporateOrders(r.Context(), sid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// CreateCorporateOrder оформляет корпоративный заказ.
func (h *Handler) CreateCorporateOrder(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req model.CorporateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.service.CreateCorporateOrder(r.Context(), sid, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// UpdateCorporateOrder применяет действие из пути к корпоративному заказу.
func (h *Handler) UpdateCorporateOrder(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	action := backend.CorporateAction(chi.URLParam(r, "action"))
	res, err := h.service.UpdateCorporateOrder(r.Context(), sid, chi.URLParam(r, "orderID"), action)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Contact отправляет сообщение из формы обратной связи.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req model.ContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.Contact(r.Context(), sid, req); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// GetWishlist возвращает избранное.
func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.service.Wishlist(r.Context(), sid))
}

type toggleWishlistResponse struct {
	ProductIDs []int64 `json:"product_ids"`
	Count      int     `json:"count"`
	Added      bool    `json:"added"`
}

// ToggleWishlist добавляет товар в избранное или убирает его.
func (h *Handler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	view, added, err := h.service.ToggleWishlist(r.Context(), sid, productID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleWishlistResponse{ProductIDs: view.ProductIDs, Count: view.Count, Added: added})
}

// RemoveWishlistItem убирает товар из избранного.
func (h *Handler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	view, err := h.service.RemoveFromWishlist(r.Context(), sid, productID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ClearWishlist очищает избранное.
func (h *Handler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.service.ClearWishlist(r.Context(), sid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
