// Package handler содержит HTTP-обработчики API витрины.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/floran-storefront/internal/backend"
	"github.com/mmeshcher/floran-storefront/internal/bouquet"
	"github.com/mmeshcher/floran-storefront/internal/cart"
	"github.com/mmeshcher/floran-storefront/internal/catalog"
	"github.com/mmeshcher/floran-storefront/internal/middleware"
	"github.com/mmeshcher/floran-storefront/internal/model"
	"github.com/mmeshcher/floran-storefront/internal/pricing"
	"github.com/mmeshcher/floran-storefront/internal/service"
	"github.com/mmeshcher/floran-storefront/internal/validation"
)

// genericErrorMessage показывается покупателю при сбое связи с внешним API.
const genericErrorMessage = "Something went wrong. Please try again."

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	View(ctx context.Context, sid string) *service.View
	Login(ctx context.Context, sid, email, password string) (*service.View, error)
	Register(ctx context.Context, sid string, form validation.Registration) (*service.View, error)
	Logout(ctx context.Context, sid string) *service.View

	AddToCart(ctx context.Context, sid string, productID int64, quantity int) (*service.View, error)
	RemoveFromCart(ctx context.Context, sid string, productID int64) *service.View
	SetCartQuantity(ctx context.Context, sid string, productID int64, quantity int) *service.View
	ClearCart(ctx context.Context, sid string) *service.View

	Quote(ctx context.Context, sid string, sel service.Selection) (*service.Quote, error)
	PlaceOrder(ctx context.Context, sid string, form service.CheckoutForm) (*model.OrderConfirmation, error)

	Products(ctx context.Context, category string, query catalog.Query) ([]model.Product, error)
	Suggestions(ctx context.Context, text string) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	Offers(ctx context.Context) (*model.Offers, error)
	Loyalty(ctx context.Context, sid string) (*model.LoyaltyAccount, error)

	Orders(ctx context.Context, sid string) ([]model.Order, error)
	UpdateDelivery(ctx context.Context, sid, orderID string, deliveryType model.DeliveryType, date, clock string) error
	CancelOrder(ctx context.Context, sid, orderID string) error

	Subscriptions(ctx context.Context, sid string) ([]model.Subscription, error)
	CreateSubscription(ctx context.Context, sid string, req model.SubscriptionRequest) (*model.ScheduleUpdate, error)
	UpdateSubscription(ctx context.Context, sid, id string, action backend.SubscriptionAction) (*model.ScheduleUpdate, error)

	CorporatePreview(ctx context.Context, productID int64, quantity int) (*pricing.CorporateQuote, error)
	CorporateOrders(ctx context.Context, sid string) ([]model.CorporateOrder, error)
	CreateCorporateOrder(ctx context.Context, sid string, req model.CorporateOrderRequest) (*model.ScheduleUpdate, error)
	UpdateCorporateOrder(ctx context.Context, sid, id string, action backend.CorporateAction) (*model.ScheduleUpdate, error)

	Contact(ctx context.Context, sid string, req model.ContactRequest) error

	Wishlist(ctx context.Context, sid string) *service.WishlistView
	ToggleWishlist(ctx context.Context, sid string, productID int64) (*service.WishlistView, bool, error)
	RemoveFromWishlist(ctx context.Context, sid string, productID int64) (*service.WishlistView, error)
	ClearWishlist(ctx context.Context, sid string) (*service.WishlistView, error)

	BouquetOptions() bouquet.Options
	Bouquet(ctx context.Context, sid string) *service.BouquetView
	AddBouquetFlower(ctx context.Context, sid string, productID int64) (*service.BouquetView, error)
	UpdateBouquetFlower(ctx context.Context, sid string, productID int64, delta int) *service.BouquetView
	RemoveBouquetFlower(ctx context.Context, sid string, productID int64) *service.BouquetView
	ConfigureBouquet(ctx context.Context, sid string, opts service.BouquetOptions) (*service.BouquetView, error)
	ClearBouquet(ctx context.Context, sid string) *service.BouquetView
	ShareBouquet(ctx context.Context, sid string) (string, error)
	LoadBouquet(ctx context.Context, sid, code string) (*service.BouquetView, error)
	AddBouquetToCart(ctx context.Context, sid string) (*service.View, error)
}

// Handler реализует HTTP-обработчики API витрины.
type Handler struct {
	service  Service
	logger   *zap.Logger
	sessions *middleware.SessionMiddleware
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, sessions *middleware.SessionMiddleware) *Handler {
	return &Handler{
		service:  s,
		logger:   logger,
		sessions: sessions,
	}
}

type errorResponse struct {
	Error    string `json:"error"`
	Field    string `json:"field,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

// writeError переводит ошибку бизнес-логики в HTTP-ответ.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *validation.Error
	var rej *backend.RejectedError

	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Message, Field: vErr.Field})
	case errors.Is(err, cart.ErrInvalidQuantity):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Quantity must be at least 1", Field: "quantity"})
	case errors.Is(err, service.ErrEmptyCart):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "Your cart is empty", Redirect: "/cart"})
	case errors.Is(err, service.ErrOutOfStock):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "This product is out of stock"})
	case errors.Is(err, service.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Please log in to continue", Redirect: "/login"})
	case errors.As(err, &rej):
		writeJSON(w, rej.StatusCode, errorResponse{Error: rej.Detail})
	case errors.Is(err, service.ErrOrderFailed), errors.Is(err, backend.ErrUnavailable):
		h.logger.Warn("backend unavailable", zap.Error(err), zap.String("uri", r.RequestURI))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: genericErrorMessage})
	case errors.Is(err, context.Canceled):
		h.logger.Debug("request cancelled", zap.String("uri", r.RequestURI))
	default:
		h.logger.Error("unexpected error", zap.Error(err), zap.String("uri", r.RequestURI))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: genericErrorMessage})
	}
}

// sessionID возвращает идентификатор сессии, выставленный SessionMiddleware.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sid, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		h.logger.Error("session id missing from request context", zap.String("uri", r.RequestURI))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: genericErrorMessage})
		return "", false
	}
	return sid, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return false
	}
	return true
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid product id", Field: "productID"})
		return 0, false
	}
	return id, true
}
