package handler

import (
	"net/http"

	"github.com/mmeshcher/floran-storefront/internal/service"
)

type bouquetFlowerRequest struct {
	ProductID int64 `json:"product_id"`
}

type bouquetCountRequest struct {
	Delta *int `json:"delta"`
}

type shareCode struct {
	Code string `json:"code"`
}

// GetBouquetOptions возвращает формы, размеры и упаковки букета.
func (h *Handler) GetBouquetOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.BouquetOptions())
}

// GetBouquet возвращает собираемый букет.
func (h *Handler) GetBouquet(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.service.Bouquet(r.Context(), sid))
}

// ConfigureBouquet меняет форму, размер и упаковку букета.
func (h *Handler) ConfigureBouquet(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var opts service.BouquetOptions
	if !decodeJSON(w, r, &opts) {
		return
	}

	view, err := h.service.ConfigureBouquet(r.Context(), sid, opts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ClearBouquet начинает букет заново.
func (h *Handler) ClearBouquet(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.service.ClearBouquet(r.Context(), sid))
}

// AddBouquetFlower добавляет цветок в букет.
func (h *Handler) AddBouquetFlower(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req bouquetFlowerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid product id", Field: "product_id"})
		return
	}

	view, err := h.service.AddBouquetFlower(r.Context(), sid, req.ProductID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// UpdateBouquetFlower меняет количество цветка на delta.
func (h *Handler) UpdateBouquetFlower(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req bouquetCountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Delta == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Delta is required", Field: "delta"})
		return
	}

	writeJSON(w, http.StatusOK, h.service.UpdateBouquetFlower(r.Context(), sid, productID, *req.Delta))
}

// RemoveBouquetFlower убирает цветок из букета.
func (h *Handler) RemoveBouquetFlower(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.service.RemoveBouquetFlower(r.Context(), sid, productID))
}

// ShareBouquet возвращает код букета для ссылки.
func (h *Handler) ShareBouquet(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	code, err := h.service.ShareBouquet(r.Context(), sid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shareCode{Code: code})
}

// LoadBouquet открывает букет по коду из ссылки.
func (h *Handler) LoadBouquet(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req shareCode
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.service.LoadBouquet(r.Context(), sid, req.Code)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// AddBouquetToCart кладёт букет в корзину.
func (h *Handler) AddBouquetToCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.service.AddBouquetToCart(r.Context(), sid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
