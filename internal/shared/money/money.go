// Package money parses monetary input at the API boundary. Amounts travel
// as strings in request bodies and are stored as decimals; non-numeric or
// negative input is rejected before it can reach persistence.
package money

import (
	"net/http"
	"strings"

	"krishr/internal/shared/apperror"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = apperror.New(
	apperror.CodeInvalidInput,
	"monetary amount must be a non-negative number",
	http.StatusBadRequest,
)

// Parse converts a boundary string into a decimal amount. The empty string
// is treated as zero so optional DTO fields do not force clients to send
// every component.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Format renders an amount with two fractional digits for responses.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
