package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the storefront's navigation surface. Cart, checkout and
// order routes are auth-gated; the listing and login are public.
func NewRouter(h *Handlers, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/session", h.Session)
	r.Post("/session/clear-error", h.DismissLoginError)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ProductsState)
		r.Post("/load", h.LoadProducts)
		r.Post("/load-more", h.LoadMoreProducts)
		r.Post("/reset", h.ResetProducts)
		r.Post("/search-input", h.SearchInput)
		r.Post("/search-clear", h.ClearSearch)
	})

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(h.auth))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddCartItem)
			r.Put("/items/{productID}", h.UpdateCartItem)
			r.Delete("/items/{productID}", h.RemoveCartItem)
		})

		r.Post("/checkout", h.PlaceOrder)
		r.Get("/orders/{orderID}", h.GetOrder)
	})

	return r
}
