package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/an678-mhg/test-fe-interview-ecom/internal/domain"
)

func validShipping() domain.ShippingInfo {
	return domain.ShippingInfo{
		Name:            "Jane Doe",
		Phone:           "+1 (555) 123-4567",
		Email:           "jane@example.com",
		PostalCode:      "12345",
		Address:         "1 Main St",
		DetailedAddress: "Apt 4",
	}
}

func validPayment() domain.PaymentInfo {
	return domain.PaymentInfo{
		Method:     domain.PaymentMethodCreditCard,
		CardNumber: "4111 1111 1111 1111",
		ExpiryDate: "12/99",
		CVV:        "123",
	}
}

func TestValidateShipping_AllValid(t *testing.T) {
	assert.Empty(t, ValidateShipping(validShipping()))
}

func TestValidateShipping_CollectsPerFieldErrors(t *testing.T) {
	errs := ValidateShipping(domain.ShippingInfo{
		Phone:      "123",
		Email:      "not-an-email",
		PostalCode: "999",
	})

	assert.Equal(t, "Name is required", errs["name"])
	assert.Equal(t, "Invalid phone number", errs["phone"])
	assert.Equal(t, "Invalid email address", errs["email"])
	assert.Contains(t, errs["postalCode"], "Invalid postal code")
	assert.Equal(t, "Street address is required", errs["address"])
	assert.Equal(t, "Detailed address is required", errs["detailedAddress"])
}

func TestValidateShipping_WhitespaceIsEmpty(t *testing.T) {
	info := validShipping()
	info.Name = "   "
	errs := ValidateShipping(info)
	assert.Equal(t, "Name is required", errs["name"])
}

func TestValidatePayment_AllValid(t *testing.T) {
	assert.Empty(t, ValidatePayment(validPayment()))
}

func TestValidatePayment_CardFieldErrors(t *testing.T) {
	errs := ValidatePayment(domain.PaymentInfo{
		Method:     domain.PaymentMethodDebitCard,
		CardNumber: "123",
		ExpiryDate: "13/10",
		CVV:        "12",
	})

	assert.Contains(t, errs["cardNumber"], "16 digits")
	assert.Contains(t, errs["expiryDate"], "MM/YY")
	assert.Contains(t, errs["cvv"], "3-4 digits")
}

func TestValidatePayment_PaypalSkipsCardFields(t *testing.T) {
	errs := ValidatePayment(domain.PaymentInfo{Method: domain.PaymentMethodPaypal})
	assert.Empty(t, errs)
}
