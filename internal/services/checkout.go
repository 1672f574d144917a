package services

import (
	"fmt"
	"strings"

	"localcart/internal/domain"
	"localcart/internal/validate"
)

type PaymentMethod string

const (
	PayMTN    PaymentMethod = "MTN Mobile Money"
	PayAirtel PaymentMethod = "Airtel Money"
	PayPayPal PaymentMethod = "PayPal"
)

// ParsePaymentMethod accepts the short API names.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mtn":
		return PayMTN, true
	case "airtel":
		return PayAirtel, true
	case "paypal":
		return PayPayPal, true
	}
	return "", false
}

type Payer struct {
	FullName string
	Phone    string
	Location string
	Note     string
	Email    string
	Password string
}

// Checkout validates the payer form for method and returns the status line
// shown to the buyer. No money moves.
func Checkout(p domain.Product, method PaymentMethod, payer Payer) (string, error) {
	switch method {
	case PayMTN, PayAirtel:
		if _, ok := validate.Required(payer.FullName); !ok {
			return "", domain.Invalid("fullName", "required")
		}
		if !validate.Phone(payer.Phone) {
			return "", domain.Invalid("phone", "must have 9 to 12 digits")
		}
		if _, ok := validate.Required(payer.Location); !ok {
			return "", domain.Invalid("location", "required")
		}
		return fmt.Sprintf("Processing %s for %s: %s, %s, %s", method, p.Name,
			strings.TrimSpace(payer.FullName), strings.TrimSpace(payer.Phone), strings.TrimSpace(payer.Location)), nil
	case PayPayPal:
		email, ok := validate.Email(payer.Email)
		if !ok {
			return "", domain.Invalid("email", "must contain @ and .")
		}
		if len(payer.Password) < 6 {
			return "", domain.Invalid("password", "at least 6 characters")
		}
		return fmt.Sprintf("Redirecting to PayPal for %s: account %s", p.Name, email), nil
	}
	return "", domain.Invalid("method", "unknown payment method")
}
