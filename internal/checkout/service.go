// Package checkout sequences order placement: form validation, a
// best-effort profile update, simulated payment, then cart teardown.
package checkout

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/an678-mhg/test-fe-interview-ecom/internal/api"
	"github.com/an678-mhg/test-fe-interview-ecom/internal/domain"
	"github.com/an678-mhg/test-fe-interview-ecom/internal/validation"
)

var (
	ErrEmptyCart     = errors.New("cart is empty, nothing to checkout")
	ErrOrderNotFound = errors.New("order not found")
)

// ValidationError carries the per-field messages for both checkout forms.
// It is consumed by the form layer, never rethrown past it.
type ValidationError struct {
	Shipping validation.FieldErrors `json:"shipping,omitempty"`
	Payment  validation.FieldErrors `json:"payment,omitempty"`
}

func (e *ValidationError) Error() string {
	return "checkout form has invalid fields"
}

// UserUpdater is the slice of the remote client used for the best-effort
// profile update.
type UserUpdater interface {
	UpdateUser(ctx context.Context, id int64, patch api.UserPatch) (*domain.User, error)
}

// Cart is the slice of the cart store the checkout needs.
type Cart interface {
	Items() []domain.LineItem
	Total() float64
	DiscountedTotal() float64
	Clear(ctx context.Context)
}

// Session exposes the signed-in user for the profile update.
type Session interface {
	User() *domain.User
}

type Service struct {
	users        UserUpdater
	cart         Cart
	session      Session
	paymentDelay time.Duration

	mu     sync.RWMutex
	orders map[uuid.UUID]*domain.OrderSummary
}

func NewService(users UserUpdater, cart Cart, session Session, paymentDelay time.Duration) *Service {
	return &Service{
		users:        users,
		cart:         cart,
		session:      session,
		paymentDelay: paymentDelay,
		orders:       make(map[uuid.UUID]*domain.OrderSummary),
	}
}

// PlaceOrder runs the whole checkout. On success the cart is cleared and
// the returned summary's total equals the cart's pre-clear discounted total.
func (s *Service) PlaceOrder(ctx context.Context, shipping domain.ShippingInfo, payment domain.PaymentInfo) (*domain.OrderSummary, error) {
	shippingErrs := validation.ValidateShipping(shipping)
	paymentErrs := validation.ValidatePayment(payment)
	if len(shippingErrs) > 0 || len(paymentErrs) > 0 {
		return nil, &ValidationError{Shipping: shippingErrs, Payment: paymentErrs}
	}

	items := s.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := s.cart.Total()
	total := s.cart.DiscountedTotal()

	// Best-effort: the collaborator may not persist this, and a failure
	// must not block the order.
	if user := s.session.User(); user != nil {
		_, err := s.users.UpdateUser(ctx, user.ID, api.UserPatch{
			Address: &domain.Address{
				Address:    shipping.Address,
				City:       shipping.DetailedAddress,
				PostalCode: shipping.PostalCode,
			},
			Phone: shipping.Phone,
		})
		if err != nil {
			log.Printf("checkout: user update failed, continuing: %v", err)
		}
	}

	if err := s.processPayment(ctx); err != nil {
		return nil, err
	}

	summary := &domain.OrderSummary{
		OrderID:  uuid.New(),
		Items:    items,
		Subtotal: subtotal,
		Discount: subtotal - total,
		Total:    total,
		Shipping: shipping,
		Payment:  payment.Method,
		CardLast: maskCard(payment),
		PlacedAt: time.Now(),
	}

	s.cart.Clear(ctx)

	s.mu.Lock()
	s.orders[summary.OrderID] = summary
	s.mu.Unlock()

	return summary, nil
}

// Order looks up a placed order for the order-success view.
func (s *Service) Order(id uuid.UUID) (*domain.OrderSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return summary, nil
}

// processPayment simulates the payment provider with a fixed delay.
func (s *Service) processPayment(ctx context.Context) error {
	timer := time.NewTimer(s.paymentDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func maskCard(payment domain.PaymentInfo) string {
	if !payment.Method.IsCard() {
		return ""
	}
	digits := make([]byte, 0, len(payment.CardNumber))
	for i := 0; i < len(payment.CardNumber); i++ {
		if c := payment.CardNumber[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}
	if len(digits) < 4 {
		return ""
	}
	return string(digits[len(digits)-4:])
}
