package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/an678-mhg/test-fe-interview-ecom/internal/api"
	"github.com/an678-mhg/test-fe-interview-ecom/internal/auth"
	"github.com/an678-mhg/test-fe-interview-ecom/internal/cart"
	"github.com/an678-mhg/test-fe-interview-ecom/internal/checkout"
	"github.com/an678-mhg/test-fe-interview-ecom/internal/domain"
	"github.com/an678-mhg/test-fe-interview-ecom/internal/products"
)

// productGetter is the slice of the remote client used when an add-to-cart
// arrives for a product not present in the current listing.
type productGetter interface {
	Product(ctx context.Context, id int64) (*domain.Product, error)
}

type Handlers struct {
	auth     *auth.Store
	products *products.Store
	search   *products.SearchInput
	cart     *cart.Store
	checkout *checkout.Service
	catalog  productGetter
}

func NewHandlers(a *auth.Store, p *products.Store, si *products.SearchInput, c *cart.Store, co *checkout.Service, catalog productGetter) *Handlers {
	return &Handlers{
		auth:     a,
		products: p,
		search:   si,
		cart:     c,
		checkout: co,
		catalog:  catalog,
	}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	if err := h.auth.Login(r.Context(), creds); err != nil {
		status := http.StatusBadGateway
		var se *api.StatusError
		if errors.As(err, &se) {
			status = se.StatusCode
		}
		respondError(w, status, err.Error(), "LOGIN_FAILED")
		return
	}

	respondJSON(w, http.StatusOK, h.auth.Snapshot())
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context())
	respondJSON(w, http.StatusOK, h.auth.Snapshot())
}

func (h *Handlers) Session(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.auth.Snapshot())
}

// DismissLoginError backs navigating away from the login view.
func (h *Handlers) DismissLoginError(w http.ResponseWriter, r *http.Request) {
	h.auth.ClearError()
	respondJSON(w, http.StatusOK, h.auth.Snapshot())
}

func (h *Handlers) ProductsState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.products.Snapshot())
}

// LoadProducts handles the listing view mounting (skip 0) and explicit page
// requests, including the listing's retry action.
func (h *Handlers) LoadProducts(w http.ResponseWriter, r *http.Request) {
	skip := 0
	if raw := r.URL.Query().Get("skip"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, "invalid skip", "BAD_REQUEST")
			return
		}
		skip = parsed
	}

	h.products.Load(r.Context(), skip)
	respondJSON(w, http.StatusOK, h.products.Snapshot())
}

// LoadMoreProducts is the infinite-scroll trigger.
func (h *Handlers) LoadMoreProducts(w http.ResponseWriter, r *http.Request) {
	h.products.LoadMore(r.Context())
	respondJSON(w, http.StatusOK, h.products.Snapshot())
}

func (h *Handlers) ResetProducts(w http.ResponseWriter, r *http.Request) {
	h.products.Reset()
	respondJSON(w, http.StatusOK, h.products.Snapshot())
}

type searchInputDTO struct {
	Value string `json:"value"`
}

// SearchInput receives keystroke events from the search box. The dispatch
// itself is debounced, so the response only acknowledges receipt.
func (h *Handlers) SearchInput(w http.ResponseWriter, r *http.Request) {
	var input searchInputDTO
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	h.search.Type(input.Value)
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (h *Handlers) ClearSearch(w http.ResponseWriter, r *http.Request) {
	h.search.Clear()
	respondJSON(w, http.StatusOK, h.products.Snapshot())
}

type cartStateDTO struct {
	Items           []domain.LineItem `json:"items"`
	Total           float64           `json:"total"`
	DiscountedTotal float64           `json:"discountedTotal"`
	TotalQuantity   int               `json:"totalQuantity"`
}

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartState())
}

type addItemDTO struct {
	ProductID int64 `json:"product_id"`
}

func (h *Handlers) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var dto addItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	product, ok := h.listedProduct(dto.ProductID)
	if !ok {
		fetched, err := h.catalog.Product(r.Context(), dto.ProductID)
		if err != nil {
			status := http.StatusBadGateway
			var se *api.StatusError
			if errors.As(err, &se) {
				status = se.StatusCode
			}
			respondError(w, status, err.Error(), "PRODUCT_LOOKUP_FAILED")
			return
		}
		product = *fetched
	}

	h.cart.AddItem(r.Context(), product)
	respondJSON(w, http.StatusOK, h.cartState())
}

type updateQuantityDTO struct {
	Quantity int `json:"quantity"`
}

func (h *Handlers) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id", "BAD_REQUEST")
		return
	}

	var dto updateQuantityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	h.cart.UpdateQuantity(r.Context(), productID, dto.Quantity)
	respondJSON(w, http.StatusOK, h.cartState())
}

func (h *Handlers) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id", "BAD_REQUEST")
		return
	}

	h.cart.RemoveItem(r.Context(), productID)
	respondJSON(w, http.StatusOK, h.cartState())
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear(r.Context())
	respondJSON(w, http.StatusOK, h.cartState())
}

type checkoutDTO struct {
	Shipping domain.ShippingInfo `json:"shippingInfo"`
	Payment  domain.PaymentInfo  `json:"paymentInfo"`
}

func (h *Handlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var dto checkoutDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	summary, err := h.checkout.PlaceOrder(r.Context(), dto.Shipping, dto.Payment)
	if err != nil {
		var verr *checkout.ValidationError
		switch {
		case errors.As(err, &verr):
			respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error:   verr.Error(),
				Code:    "VALIDATION_FAILED",
				Details: verr,
			})
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, http.StatusConflict, err.Error(), "EMPTY_CART")
		default:
			respondError(w, http.StatusInternalServerError, err.Error(), "CHECKOUT_FAILED")
		}
		return
	}

	respondJSON(w, http.StatusCreated, summary)
}

// GetOrder backs the order-success view.
func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id", "BAD_REQUEST")
		return
	}

	summary, err := h.checkout.Order(id)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error(), "ORDER_NOT_FOUND")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *Handlers) cartState() cartStateDTO {
	return cartStateDTO{
		Items:           h.cart.Items(),
		Total:           h.cart.Total(),
		DiscountedTotal: h.cart.DiscountedTotal(),
		TotalQuantity:   h.cart.TotalQuantity(),
	}
}

func (h *Handlers) listedProduct(id int64) (domain.Product, bool) {
	for _, p := range h.products.Snapshot().Products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message, code string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}
