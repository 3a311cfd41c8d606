// Package validation holds the pure field validators and formatters used by
// the checkout forms. No shared state, no side effects.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe      = regexp.MustCompile(`^[\d\s\-+()]+$`)
	nonDigitRe   = regexp.MustCompile(`\D`)
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expiryRe     = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	cvvRe        = regexp.MustCompile(`^\d{3,4}$`)
	postalCodeRe = regexp.MustCompile(`^[0-9]{5}(-[0-9]{4})?$`)
)

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidatePhone accepts digits, spaces, dashes, plus and parentheses, and
// requires at least 10 digits once everything else is stripped.
func ValidatePhone(phone string) bool {
	if !phoneRe.MatchString(phone) {
		return false
	}
	return len(nonDigitRe.ReplaceAllString(phone, "")) >= 10
}

// ValidateCardNumber requires exactly 16 digits after stripping spaces and
// dashes.
func ValidateCardNumber(cardNumber string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(cardNumber)
	return cardNumberRe.MatchString(cleaned)
}

// ValidateExpiryDate checks MM/YY format and rejects dates before the
// current month.
func ValidateExpiryDate(expiry string) bool {
	return validateExpiryAt(expiry, time.Now())
}

func validateExpiryAt(expiry string, now time.Time) bool {
	m := expiryRe.FindStringSubmatch(expiry)
	if m == nil {
		return false
	}

	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])

	currentYear := now.Year() % 100
	currentMonth := int(now.Month())

	if year < currentYear {
		return false
	}
	if year == currentYear && month < currentMonth {
		return false
	}
	return true
}

func ValidateCVV(cvv string) bool {
	return cvvRe.MatchString(cvv)
}

// ValidatePostalCode accepts 5 digits, optionally followed by a dash and 4
// more (12345 or 12345-6789).
func ValidatePostalCode(postalCode string) bool {
	return postalCodeRe.MatchString(postalCode)
}

// FormatCardNumber groups digits into 4-character chunks separated by
// spaces.
func FormatCardNumber(value string) string {
	cleaned := strings.ReplaceAll(value, " ", "")
	if cleaned == "" {
		return cleaned
	}
	var chunks []string
	for len(cleaned) > 4 {
		chunks = append(chunks, cleaned[:4])
		cleaned = cleaned[4:]
	}
	chunks = append(chunks, cleaned)
	return strings.Join(chunks, " ")
}

// FormatExpiryDate inserts the slash after the month as the user types,
// keeping at most MM/YY.
func FormatExpiryDate(value string) string {
	cleaned := nonDigitRe.ReplaceAllString(value, "")
	if len(cleaned) >= 2 {
		end := len(cleaned)
		if end > 4 {
			end = 4
		}
		return cleaned[:2] + "/" + cleaned[2:end]
	}
	return cleaned
}
