package handler

import (
	"net/http"

	"github.com/mmeshcher/floran-storefront/internal/service"
)

// Quote рассчитывает стоимость заказа с учётом выбранных баллов и промокода.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var sel service.Selection
	if !decodeJSON(w, r, &sel) {
		return
	}

	quote, err := h.service.Quote(r.Context(), sid, sel)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// PlaceOrder оформляет заказ из содержимого корзины.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var form service.CheckoutForm
	if !decodeJSON(w, r, &form) {
		return
	}

	conf, err := h.service.PlaceOrder(r.Context(), sid, form)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, conf)
}
