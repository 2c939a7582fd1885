package handler

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

type stubService struct {
	view *service.View
	err  error

	quote   *service.Quote
	conf    *model.OrderConfirmation
	offers  *model.Offers
	preview *pricing.CorporateQuote

	sessions    []string
	productID   int64
	quantity    int
	action      string
	form        service.CheckoutForm
	category    string
	query       catalog.Query
	setQtyCalls int
	delta       int
	opts        service.BouquetOptions
}

func (s *stubService) record(sid string) {
	s.sessions = append(s.sessions, sid)
}

func (s *stubService) currentView() *service.View {
	if s.view != nil {
		return s.view
	}
	return &service.View{Cart: service.CartView{Lines: []model.CartLine{}}}
}

func (s *stubService) View(ctx context.Context, sid string) *service.View {
	s.record(sid)
	return s.currentView()
}

func (s *stubService) Login(ctx context.Context, sid, email, password string) (*service.View, error) {
	s.record(sid)
	return s.currentView(), s.err
}

func (s *stubService) Register(ctx context.Context, sid string, form validation.Registration) (*service.View, error) {
	s.record(sid)
	return s.currentView(), s.err
}

func (s *stubService) Logout(ctx context.Context, sid string) *service.View {
	s.record(sid)
	return s.currentView()
}

func (s *stubService) AddToCart(ctx context.Context, sid string, productID int64, quantity int) (*service.View, error) {
	s.record(sid)
	s.productID, s.quantity = productID, quantity
	return s.currentView(), s.err
}

func (s *stubService) RemoveFromCart(ctx context.Context, sid string, productID int64) *service.View {
	s.productID = productID
	return s.currentView()
}

func (s *stubService) SetCartQuantity(ctx context.Context, sid string, productID int64, quantity int) *service.View {
	s.setQtyCalls++
	s.productID, s.quantity = productID, quantity
	return s.currentView()
}

func (s *stubService) ClearCart(ctx context.Context, sid string) *service.View {
	return s.currentView()
}

func (s *stubService) Quote(ctx context.Context, sid string, sel service.Selection) (*service.Quote, error) {
	return s.quote, s.err
}

func (s *stubService) PlaceOrder(ctx context.Context, sid string, form service.CheckoutForm) (*model.OrderConfirmation, error) {
	s.form = form
	return s.conf, s.err
}

func (s *stubService) Products(ctx context.Context, category string, query catalog.Query) ([]model.Product, error) {
	s.category, s.query = category, query
	return nil, s.err
}

func (s *stubService) Suggestions(ctx context.Context, text string) ([]model.Product, error) {
	s.query = catalog.Query{Text: text}
	return []model.Product{{ID: 1, Name: "Rose"}}, s.err
}

func (s *stubService) Product(ctx context.Context, id int64) (*model.Product, error) {
	s.productID = id
	return &model.Product{ID: id}, s.err
}

func (s *stubService) Offers(ctx context.Context) (*model.Offers, error) {
	return s.offers, s.err
}

func (s *stubService) Loyalty(ctx context.Context, sid string) (*model.LoyaltyAccount, error) {
	return &model.LoyaltyAccount{}, s.err
}

func (s *stubService) Orders(ctx context.Context, sid string) ([]model.Order, error) {
	return []model.Order{}, s.err
}

func (s *stubService) UpdateDelivery(ctx context.Context, sid, orderID string, deliveryType model.DeliveryType, date, clock string) error {
	return s.err
}

func (s *stubService) CancelOrder(ctx context.Context, sid, orderID string) error {
	return s.err
}

func (s *stubService) Subscriptions(ctx context.Context, sid string) ([]model.Subscription, error) {
	return []model.Subscription{}, s.err
}

func (s *stubService) CreateSubscription(ctx context.Context, sid string, req model.SubscriptionRequest) (*model.ScheduleUpdate, error) {
	return &model.ScheduleUpdate{}, s.err
}

func (s *stubService) UpdateSubscription(ctx context.Context, sid, id string, action backend.SubscriptionAction) (*model.ScheduleUpdate, error) {
	s.action = id + "/" + string(action)
	return &model.ScheduleUpdate{}, s.err
}

func (s *stubService) CorporatePreview(ctx context.Context, productID int64, quantity int) (*pricing.CorporateQuote, error) {
	s.productID, s.quantity = productID, quantity
	return s.preview, s.err
}

func (s *stubService) CorporateOrders(ctx context.Context, sid string) ([]model.CorporateOrder, error) {
	return []model.CorporateOrder{}, s.err
}

func (s *stubService) CreateCorporateOrder(ctx context.Context, sid string, req model.CorporateOrderRequest) (*model.ScheduleUpdate, error) {
	return &model.ScheduleUpdate{}, s.err
}

func (s *stubService) UpdateCorporateOrder(ctx context.Context, sid, id string, action backend.CorporateAction) (*model.ScheduleUpdate, error) {
	s.action = id + "/" + string(action)
	return &model.ScheduleUpdate{}, s.err
}

func (s *stubService) Contact(ctx context.Context, sid string, req model.ContactRequest) error {
	return s.err
}

func (s *stubService) Wishlist(ctx context.Context, sid string) *service.WishlistView {
	return &service.WishlistView{ProductIDs: []int64{}}
}

func (s *stubService) ToggleWishlist(ctx context.Context, sid string, productID int64) (*service.WishlistView, bool, error) {
	s.productID = productID
	return &service.WishlistView{ProductIDs: []int64{productID}, Count: 1}, true, s.err
}

func (s *stubService) RemoveFromWishlist(ctx context.Context, sid string, productID int64) (*service.WishlistView, error) {
	return &service.WishlistView{ProductIDs: []int64{}}, s.err
}

func (s *stubService) ClearWishlist(ctx context.Context, sid string) (*service.WishlistView, error) {
	return &service.WishlistView{ProductIDs: []int64{}}, s.err
}

func (s *stubService) BouquetOptions() bouquet.Options {
	return bouquet.AvailableOptions()
}

func (s *stubService) Bouquet(ctx context.Context, sid string) *service.BouquetView {
	return &service.BouquetView{Design: bouquet.NewDesign()}
}

func (s *stubService) AddBouquetFlower(ctx context.Context, sid string, productID int64) (*service.BouquetView, error) {
	s.productID = productID
	return &service.BouquetView{Design: bouquet.NewDesign()}, s.err
}

func (s *stubService) UpdateBouquetFlower(ctx context.Context, sid string, productID int64, delta int) *service.BouquetView {
	s.productID, s.delta = productID, delta
	return &service.BouquetView{Design: bouquet.NewDesign()}
}

func (s *stubService) RemoveBouquetFlower(ctx context.Context, sid string, productID int64) *service.BouquetView {
	s.productID = productID
	return &service.BouquetView{Design: bouquet.NewDesign()}
}

func (s *stubService) ConfigureBouquet(ctx context.Context, sid string, opts service.BouquetOptions) (*service.BouquetView, error) {
	s.opts = opts
	return &service.BouquetView{Design: bouquet.NewDesign()}, s.err
}

func (s *stubService) ClearBouquet(ctx context.Context, sid string) *service.BouquetView {
	return &service.BouquetView{Design: bouquet.NewDesign()}
}

func (s *stubService) ShareBouquet(ctx context.Context, sid string) (string, error) {
	return "c2hhcmU", s.err
}

func (s *stubService) LoadBouquet(ctx context.Context, sid, code string) (*service.BouquetView, error) {
	s.action = code
	return &service.BouquetView{Design: bouquet.NewDesign()}, s.err
}

func (s *stubService) AddBouquetToCart(ctx context.Context, sid string) (*service.View, error) {
	return s.currentView(), s.err
}

func newTestRouter(t *testing.T, svc Service) http.Handler {
	t.Helper()

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	return NewHandler(svc, logger, middleware.NewSessionMiddleware("test-secret")).SetupRouter()
}

func do(t *testing.T, h http.Handler, method, target, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Result()
}

func decodeError(t *testing.T, res *http.Response) errorResponse {
	t.Helper()
	defer res.Body.Close()

	var body errorResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body
}

func TestGetSession_MintsCookie(t *testing.T) {
	svc := &stubService{}
	h := newTestRouter(t, svc)

	res := do(t, h, http.MethodGet, "/api/session", "")
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	require.Len(t, res.Cookies(), 1)
	assert.Equal(t, "floran_session", res.Cookies()[0].Name)
	require.Len(t, svc.sessions, 1)
	assert.NotEmpty(t, svc.sessions[0])
}

func TestSessionCookieIsReused(t *testing.T) {
	svc := &stubService{}
	h := newTestRouter(t, svc)

	first := do(t, h, http.MethodGet, "/api/cart", "")
	first.Body.Close()
	cookie := first.Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Len(t, svc.sessions, 2)
	assert.Equal(t, svc.sessions[0], svc.sessions[1])
	assert.Empty(t, rec.Result().Cookies())
}

func TestAddCartItem_DefaultQuantity(t *testing.T) {
	svc := &stubService{}
	h := newTestRouter(t, svc)

	res := do(t, h, http.MethodPost, "/api/cart/items", `{"product_id":7}`)
	res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, int64(7), svc.productID)
	assert.Equal(t, 1, svc.quantity)
}

func TestUpdateCartItem_PathParam(t *testing.T) {
	svc := &stubService{}
	h := newTestRouter(t, svc)

	res := do(t, h, http.MethodPatch, "/api/cart/items/12", `{"quantity":0}`)
	res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, int64(12), svc.productID)
	assert.Equal(t, 0, svc.quantity)

	res = do(t, h, http.MethodDelete, "/api/cart/items/abc", "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "productID", decodeError(t, res).Field)
}

func TestUpdateCartItem_RequiresQuantity(t *testing.T) {
	for _, body := range []string{`{}`, `{"qty":3}`} {
		t.Run(body, func(t *testing.T) {
			svc := &stubService{}
			h := newTestRouter(t, svc)

			res := do(t, h, http.MethodPatch, "/api/cart/items/12", body)
			assert.Equal(t, http.StatusBadRequest, res.StatusCode)
			assert.Equal(t, "quantity", decodeError(t, res).Field)
			assert.Zero(t, svc.setQtyCalls)
		})
	}
}

func TestListProducts_Query(t *testing.T) {
	svc := &stubService{}
	h := newTestRouter(t, svc)

	res := do(t, h, http.MethodGet, "/api/products?category=Roses&q=red&occasion=Romance&color=Red&price=mid", "")
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Roses", svc.category)
	assert.Equal(t, catalog.Query{Text: "red", Occasion: "Romance", Color: "Red", PriceRange: catalog.PriceMid}, svc.query)

	var products []model.Product
	require.NoError(t, json.NewDecoder(res.Body).Decode(&products))
	assert.Empty(t, products)
}

func TestSearchSuggestions(t *testing.T) {
	svc := &stubService{}
	h := newTestRouter(t, svc)

	res := do(t, h, http.MethodGet, "/api/products/suggestions?q=ro", "")
	res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ro", svc.query.Text)
	assert.Zero(t, svc.productID)
}

func TestBouquetRoutes(t *testing.T) {
	svc := &stubService{}
	h := newTestRouter(t, svc)

	res := do(t, h, http.MethodPatch, "/api/bouquet/flowers/4", `{"delta":-1}`)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, int64(4), svc.productID)
	assert.Equal(t, -1, svc.delta)

	res = do(t, h, http.MethodPatch, "/api/bouquet/flowers/4", `{}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "delta", decodeError(t, res).Field)

	res = do(t, h, http.MethodPut, "/api/bouquet", `{"style":"posy","size":"large","wrapping":"Ivory"}`)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, service.BouquetOptions{Style: bouquet.StylePosy, Size: bouquet.SizeLarge, Wrapping: "Ivory"}, svc.opts)

	res = do(t, h, http.MethodPost, "/api/bouquet/share", `{"code":"abc"}`)
	res.Body.Close()
	assert.Equal(t, "abc", svc.action)

	res = do(t, h, http.MethodGet, "/api/bouquet/options", "")
	defer res.Body.Close()
	var opts bouquet.Options
	require.NoError(t, json.NewDecoder(res.Body).Decode(&opts))
	assert.Len(t, opts.Sizes, 3)
}

func TestAddBouquetToCart_EmptyDesign(t *testing.T) {
	h := newTestRouter(t, &stubService{err: &validation.Error{Field: "flowers", Message: "Add at least one flower to your bouquet"}})

	res := do(t, h, http.MethodPost, "/api/bouquet/cart", "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "flowers", decodeError(t, res).Field)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		message  string
		field    string
		redirect string
	}{
		{
			name:    "validation",
			err:     &validation.Error{Field: "card_number", Message: "Invalid card number"},
			status:  http.StatusBadRequest,
			message: "Invalid card number",
			field:   "card_number",
		},
		{
			name:    "invalid quantity",
			err:     cart.ErrInvalidQuantity,
			status:  http.StatusBadRequest,
			message: "Quantity must be at least 1",
			field:   "quantity",
		},
		{
			name:     "empty cart",
			err:      service.ErrEmptyCart,
			status:   http.StatusConflict,
			message:  "Your cart is empty",
			redirect: "/cart",
		},
		{
			name:     "unauthenticated",
			err:      service.ErrUnauthenticated,
			status:   http.StatusUnauthorized,
			message:  "Please log in to continue",
			redirect: "/login",
		},
		{
			name:    "rejected detail verbatim",
			err:     &backend.RejectedError{StatusCode: http.StatusUnprocessableEntity, Detail: "Delivery slot is full"},
			status:  http.StatusUnprocessableEntity,
			message: "Delivery slot is full",
		},
		{
			name:    "order transport failure",
			err:     fmt.Errorf("%w: %w", service.ErrOrderFailed, backend.ErrUnavailable),
			status:  http.StatusBadGateway,
			message: genericErrorMessage,
		},
		{
			name:    "unexpected",
			err:     io.ErrUnexpectedEOF,
			status:  http.StatusInternalServerError,
			message: genericErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(t, &stubService{err: tt.err})

			res := do(t, h, http.MethodPost, "/api/checkout/orders", `{"customer":{"name":"Ann"}}`)
			assert.Equal(t, tt.status, res.StatusCode)

			body := decodeError(t, res)
			assert.Equal(t, tt.message, body.Error)
			assert.Equal(t, tt.field, body.Field)
			assert.Equal(t, tt.redirect, body.Redirect)
		})
	}
}

func TestPlaceOrder_Created(t *testing.T) {
	svc := &stubService{conf: &model.OrderConfirmation{OrderID: "FLR12345678", Status: "confirmed"}}
	h := newTestRouter(t, svc)

	res := do(t, h, http.MethodPost, "/api/checkout/orders",
		`{"customer":{"email":"ann@example.com"},"delivery_type":"scheduled","delivery_date":"2026-05-01","delivery_time":"09:30","selection":{"promo_code":"WELCOME10","points":200}}`)
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	var conf model.OrderConfirmation
	require.NoError(t, json.NewDecoder(res.Body).Decode(&conf))
	assert.Equal(t, "FLR12345678", conf.OrderID)

	assert.Equal(t, model.DeliveryScheduled, svc.form.DeliveryType)
	require.NotNil(t, svc.form.Selection)
	assert.Equal(t, int64(200), svc.form.Selection.Points)
}

func TestPlaceOrder_InvalidBody(t *testing.T) {
	h := newTestRouter(t, &stubService{})

	res := do(t, h, http.MethodPost, "/api/checkout/orders", `{`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Invalid request body", decodeError(t, res).Error)
}

func TestSubscriptionAction(t *testing.T) {
	svc := &stubService{}
	h := newTestRouter(t, svc)

	res := do(t, h, http.MethodPatch, "/api/subscriptions/SUB9/pause", "")
	res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "SUB9/pause", svc.action)
}

func TestCorporatePreview(t *testing.T) {
	svc := &stubService{preview: &pricing.CorporateQuote{Quantity: 30, DiscountPct: 10}}
	h := newTestRouter(t, svc)

	res := do(t, h, http.MethodPost, "/api/corporate-orders/preview", `{"product_id":3,"quantity":30}`)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, int64(3), svc.productID)
	assert.Equal(t, 30, svc.quantity)

	var q pricing.CorporateQuote
	require.NoError(t, json.NewDecoder(res.Body).Decode(&q))
	assert.Equal(t, 10, q.DiscountPct)
}

func TestToggleWishlist(t *testing.T) {
	svc := &stubService{}
	h := newTestRouter(t, svc)

	res := do(t, h, http.MethodPost, "/api/wishlist/4", "")
	defer res.Body.Close()

	var body toggleWishlistResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.True(t, body.Added)
	assert.Equal(t, []int64{4}, body.ProductIDs)
}

func TestNotFoundIsJSON(t *testing.T) {
	h := newTestRouter(t, &stubService{})

	res := do(t, h, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Not Found", decodeError(t, res).Error)
}

func TestResponsesAreCompressed(t *testing.T) {
	svc := &stubService{offers: &model.Offers{SeasonalOffers: []model.SeasonalOffer{{ID: "valentine", Code: "LOVE20"}}}}
	h := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/offers", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()
	defer res.Body.Close()
	require.Equal(t, "gzip", res.Header.Get("Content-Encoding"))

	gr, err := gzip.NewReader(res.Body)
	require.NoError(t, err)
	raw, err := io.ReadAll(gr)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(raw, []byte("LOVE20")))
}
