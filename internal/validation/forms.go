package validation

import (
	"strings"

	"github.com/an678-mhg/test-fe-interview-ecom/internal/domain"
)

// FieldErrors maps a form field name to a human-readable message. An empty
// map means the form passed.
type FieldErrors map[string]string

// ValidateShipping checks the shipping form field by field.
func ValidateShipping(info domain.ShippingInfo) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(info.Name) == "" {
		errs["name"] = "Name is required"
	}

	if strings.TrimSpace(info.Phone) == "" {
		errs["phone"] = "Phone number is required"
	} else if !ValidatePhone(info.Phone) {
		errs["phone"] = "Invalid phone number"
	}

	if strings.TrimSpace(info.Email) == "" {
		errs["email"] = "Email is required"
	} else if !ValidateEmail(info.Email) {
		errs["email"] = "Invalid email address"
	}

	if strings.TrimSpace(info.PostalCode) == "" {
		errs["postalCode"] = "Postal code is required"
	} else if !ValidatePostalCode(info.PostalCode) {
		errs["postalCode"] = "Invalid postal code (use format: 12345 or 12345-6789)"
	}

	if strings.TrimSpace(info.Address) == "" {
		errs["address"] = "Street address is required"
	}

	if strings.TrimSpace(info.DetailedAddress) == "" {
		errs["detailedAddress"] = "Detailed address is required"
	}

	return errs
}

// ValidatePayment checks the payment form. Card fields are only validated
// for card-based methods.
func ValidatePayment(info domain.PaymentInfo) FieldErrors {
	errs := FieldErrors{}

	if !info.Method.IsCard() {
		return errs
	}

	if strings.TrimSpace(info.CardNumber) == "" {
		errs["cardNumber"] = "Card number is required"
	} else if !ValidateCardNumber(info.CardNumber) {
		errs["cardNumber"] = "Invalid card number (must be 16 digits)"
	}

	if strings.TrimSpace(info.ExpiryDate) == "" {
		errs["expiryDate"] = "Expiry date is required"
	} else if !ValidateExpiryDate(info.ExpiryDate) {
		errs["expiryDate"] = "Invalid or expired date (use MM/YY format)"
	}

	if strings.TrimSpace(info.CVV) == "" {
		errs["cvv"] = "CVV is required"
	} else if !ValidateCVV(info.CVV) {
		errs["cvv"] = "Invalid CVV (3-4 digits)"
	}

	return errs
}
