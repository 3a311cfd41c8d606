package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodPaypal     PaymentMethod = "paypal"
)

// IsCard reports whether the method requires card fields (number, expiry, CVV).
func (m PaymentMethod) IsCard() bool {
	return m == PaymentMethodCreditCard || m == PaymentMethodDebitCard
}

// ShippingInfo holds the checkout shipping form. It lives only for the
// duration of a single checkout attempt and is never persisted.
type ShippingInfo struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	PostalCode      string `json:"postalCode"`
	Address         string `json:"address"`
	DetailedAddress string `json:"detailedAddress"`
	DeliveryNotes   string `json:"deliveryNotes"`
}

// PaymentInfo holds the checkout payment form.
type PaymentInfo struct {
	Method     PaymentMethod `json:"method"`
	CardNumber string        `json:"cardNumber"`
	ExpiryDate string        `json:"expiryDate"`
	CVV        string        `json:"cvv"`
}

// OrderSummary is produced by a successful checkout. Totals are captured
// from the cart before it is cleared; the card number is masked to its
// last four digits.
type OrderSummary struct {
	OrderID  uuid.UUID     `json:"orderId"`
	Items    []LineItem    `json:"items"`
	Subtotal float64       `json:"subtotal"`
	Discount float64       `json:"discount"`
	Total    float64       `json:"total"`
	Shipping ShippingInfo  `json:"shippingInfo"`
	Payment  PaymentMethod `json:"paymentMethod"`
	CardLast string        `json:"cardLast,omitempty"`
	PlacedAt time.Time     `json:"placedAt"`
}
