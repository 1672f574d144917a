package validate

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reName  = regexp.MustCompile(`^[\p{L}\p{N} _'.&-]{1,50}$`)
	reDigit = regexp.MustCompile(`[0-9]`)
)

// Required trims s and reports whether anything is left.
func Required(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

// EmailLoose is the profile and password-reset check: an '@' somewhere.
func EmailLoose(s string) bool {
	return strings.Contains(s, "@")
}

// Email is the sign-up and PayPal check: both '@' and '.' present.
func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, strings.Contains(s, "@") && strings.Contains(s, ".")
}

// Digits counts the decimal digits in s, ignoring spaces, '+' and separators.
func Digits(s string) int {
	return len(reDigit.FindAllStringIndex(s, -1))
}

// Phone accepts numbers carrying 9 to 12 digits.
func Phone(s string) bool {
	n := Digits(s)
	return n >= 9 && n <= 12
}

// Password enforces the sign-up minimum. bcrypt ignores bytes past 72.
func Password(s string) bool {
	return len(s) >= 6 && len(s) <= 72
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, reName.MatchString(s)
}

// ID validates a simple resource identifier (listing/product ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Price parses a non-negative amount.
func Price(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}
