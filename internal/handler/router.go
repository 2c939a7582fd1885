package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	custommiddleware "github.com/mmeshcher/floran-storefront/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware витрины.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(h.sessions.Middleware)
	r.Use(custommiddleware.Logger(h.logger))
	r.Use(custommiddleware.GzipMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/session", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Post("/login", h.Login)
			r.Post("/register", h.Register)
			r.Post("/logout", h.Logout)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddCartItem)
			r.Patch("/items/{productID}", h.UpdateCartItem)
			r.Delete("/items/{productID}", h.RemoveCartItem)
		})

		r.Post("/checkout/quote", h.Quote)
		r.Post("/checkout/orders", h.PlaceOrder)

		r.Get("/products", h.ListProducts)
		r.Get("/products/suggestions", h.SearchSuggestions)
		r.Get("/products/{productID}", h.GetProduct)
		r.Get("/offers", h.GetOffers)
		r.Get("/loyalty", h.GetLoyalty)

		r.Get("/orders", h.ListOrders)
		r.Patch("/orders/{orderID}/delivery", h.UpdateDelivery)
		r.Patch("/orders/{orderID}/cancel", h.CancelOrder)

		r.Get("/subscriptions", h.ListSubscriptions)
		r.Post("/subscriptions", h.CreateSubscription)
		r.Patch("/subscriptions/{subscriptionID}/{action}", h.UpdateSubscription)

		r.Get("/corporate-orders", h.ListCorporateOrders)
		r.Post("/corporate-orders", h.CreateCorporateOrder)
		r.Post("/corporate-orders/preview", h.CorporatePreview)
		r.Patch("/corporate-orders/{orderID}/{action}", h.UpdateCorporateOrder)

		r.Post("/contact", h.Contact)

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", h.GetWishlist)
			r.Delete("/", h.ClearWishlist)
			r.Post("/{productID}", h.ToggleWishlist)
			r.Delete("/{productID}", h.RemoveWishlistItem)
		})

		r.Route("/bouquet", func(r chi.Router) {
			r.Get("/", h.GetBouquet)
			r.Put("/", h.ConfigureBouquet)
			r.Delete("/", h.ClearBouquet)
			r.Get("/options", h.GetBouquetOptions)
			r.Post("/flowers", h.AddBouquetFlower)
			r.Patch("/flowers/{productID}", h.UpdateBouquetFlower)
			r.Delete("/flowers/{productID}", h.RemoveBouquetFlower)
			r.Get("/share", h.ShareBouquet)
			r.Post("/share", h.LoadBouquet)
			r.Post("/cart", h.AddBouquetToCart)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: http.StatusText(http.StatusNotFound)})
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)})
	})

	return r
}

// HTTPHandler возвращает маршрутизатор с трассировкой OpenTelemetry.
func (h *Handler) HTTPHandler() http.Handler {
	return otelhttp.NewHandler(h.SetupRouter(), "storefront")
}
