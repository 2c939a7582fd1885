package handler

import (
	"net/http"

	"github.com/mmeshcher/floran-storefront/internal/validation"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GetSession возвращает состояние сессии: пользователя, корзину и уведомление.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.service.View(r.Context(), sid))
}

// Login выполняет вход покупателя.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.service.Login(r.Context(), sid, req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Register регистрирует покупателя и выполняет вход.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var form validation.Registration
	if !decodeJSON(w, r, &form) {
		return
	}

	view, err := h.service.Register(r.Context(), sid, form)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// Logout завершает сеанс покупателя. Сессия браузера сохраняется.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.service.Logout(r.Context(), sid))
}

type addCartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

// GetCart возвращает состояние сессии вместе с корзиной.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.GetSession(w, r)
}

// AddCartItem добавляет товар в корзину. Без количества добавляется одна штука.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	req := addCartItemRequest{Quantity: 1}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID <= 0 {
		h.badRequest(w, "Invalid product id")
		return
	}

	view, err := h.service.AddToCart(r.Context(), sid, req.ProductID, req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// UpdateCartItem заменяет количество товара в корзине. Количество ноль и меньше удаляет позицию.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req quantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Quantity == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Quantity is required", Field: "quantity"})
		return
	}

	writeJSON(w, http.StatusOK, h.service.SetCartQuantity(r.Context(), sid, productID, *req.Quantity))
}

// RemoveCartItem удаляет позицию из корзины.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, h.service.RemoveFromCart(r.Context(), sid, productID))
}

// ClearCart очищает корзину.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.service.ClearCart(r.Context(), sid))
}
