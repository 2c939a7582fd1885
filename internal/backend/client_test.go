package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/floran-storefront/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	return NewClient(ts.URL)
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestValidatePromo_OK(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/promo/validate" {
			t.Errorf("path = %s, want /api/promo/validate", r.URL.Path)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if body["code"] != "WELCOME10" || body["order_total"] != 80.0 || body["customer_email"] != "ann@example.com" {
			t.Errorf("unexpected body: %v", body)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"valid":true,"code":"WELCOME10","discount_type":"percent","discount_value":10,"discount_amount":8.0,"description":"10% off your first order"}`))
	})

	res, err := client.ValidatePromo(testContext(t), "WELCOME10", decimal.NewFromInt(80), "ann@example.com")
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, model.DiscountPercent, res.DiscountType)
	assert.True(t, res.DiscountAmount.Equal(decimal.NewFromInt(8)))
}

func TestValidatePromo_RejectedDetailVerbatim(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Minimum order ₹500 required for this code"}`))
	})

	_, err := client.ValidatePromo(testContext(t), "SUMMER20", decimal.NewFromInt(80), "")
	require.Error(t, err)

	rej, ok := IsRejected(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, rej.StatusCode)
	assert.Equal(t, "Minimum order ₹500 required for this code", rej.Error())
}

func TestDo_ValidationDetailList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"loc":["body","email"],"msg":"field required"}]}`))
	})

	_, err := client.Login(testContext(t), "", "")
	rej, ok := IsRejected(err)
	require.True(t, ok)
	assert.Equal(t, "field required", rej.Detail)
}

func TestDo_ServerErrorIsUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := client.ClearCart(testContext(t), "u1")
	assert.ErrorIs(t, err, ErrUnavailable)
	_, rejected := IsRejected(err)
	assert.False(t, rejected)
}

func TestDo_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(ts.URL)
	ts.Close()

	_, err := client.GetOffers(testContext(t))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDo_NotConfigured(t *testing.T) {
	var client *Client

	_, err := client.GetLoyalty(context.Background(), "a@b.c")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDo_BearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("authorization = %q", got)
		}
		_, _ = w.Write([]byte(`[]`))
	})

	ctx := WithToken(testContext(t), "secret")
	orders, err := client.ListOrders(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCartEndpoints(t *testing.T) {
	var calls []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path+"?"+r.URL.RawQuery)
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/cart":
			_, _ = w.Write([]byte(`[{"product":{"id":7,"name":"Rose Bouquet","price":45.99,"inStock":true},"quantity":2}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/cart/item":
			var body cartItemRequest
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decode: %v", err)
			}
			if body != (cartItemRequest{UserID: "u1", ProductID: 7, Quantity: 3}) {
				t.Errorf("unexpected body: %+v", body)
			}
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		default:
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		}
	})
	ctx := testContext(t)

	lines, err := client.GetCart(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(7), lines[0].Product.ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, lines[0].UnitPrice().Equal(decimal.RequireFromString("45.99")))

	require.NoError(t, client.UpsertCartItem(ctx, "u1", 7, 3))
	require.NoError(t, client.RemoveCartItem(ctx, "u1", 7))
	require.NoError(t, client.ClearCart(ctx, "u1"))

	assert.Equal(t, []string{
		"GET /api/cart?user_id=u1",
		"POST /api/cart/item?",
		"DELETE /api/cart/item/7?user_id=u1",
		"DELETE /api/cart/clear?user_id=u1",
	}, calls)
}

func TestPlaceOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if body["total"] != 72.0 || body["points_redeemed"] != 200.0 || body["promo_code"] != "WELCOME10" {
			t.Errorf("unexpected body: %v", body)
		}
		_, _ = w.Write([]byte(`{"orderId":"FLR1A2B3C4D","status":"confirmed","points_earned":72,"new_balance":872}`))
	})

	code := "WELCOME10"
	res, err := client.PlaceOrder(testContext(t), model.OrderRequest{
		Items:          []model.OrderItem{{ProductID: 1, Name: "Rose", Price: decimal.NewFromInt(50), Quantity: 2}},
		Total:          decimal.NewFromInt(72),
		DeliveryType:   model.DeliveryImmediate,
		PointsRedeemed: 200,
		PromoCode:      &code,
	})
	require.NoError(t, err)
	assert.Equal(t, "FLR1A2B3C4D", res.OrderID)
	assert.Equal(t, int64(872), res.NewBalance)
}

func TestUpdateSubscription_UnknownAction(t *testing.T) {
	client := NewClient("localhost:1")

	_, err := client.UpdateSubscription(context.Background(), "s1", SubscriptionAction("explode"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestUpdateCorporateOrder_Skip(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/corporate-orders/CGT1/skip" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"next_delivery":"2026-11-02"}`))
	})

	res, err := client.UpdateCorporateOrder(testContext(t), "CGT1", CorporateSkip)
	require.NoError(t, err)
	require.NotNil(t, res.NextDelivery)
	assert.Equal(t, "2026-11-02", *res.NextDelivery)
}
