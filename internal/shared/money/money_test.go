package money_test

import (
	"testing"

	"krishr/internal/shared/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Run("plain integer string", func(t *testing.T) {
		d, err := money.Parse("100000")
		assert.NoError(t, err)
		assert.True(t, d.Equal(decimal.NewFromInt(100000)))
	})

	t.Run("fractional amount keeps precision", func(t *testing.T) {
		d, err := money.Parse("1234.56")
		assert.NoError(t, err)
		assert.Equal(t, "1234.56", d.StringFixed(2))
	})

	t.Run("empty string is zero", func(t *testing.T) {
		d, err := money.Parse("")
		assert.NoError(t, err)
		assert.True(t, d.IsZero())
	})

	t.Run("whitespace only is zero", func(t *testing.T) {
		d, err := money.Parse("   ")
		assert.NoError(t, err)
		assert.True(t, d.IsZero())
	})

	t.Run("non-numeric input rejected", func(t *testing.T) {
		_, err := money.Parse("20k")
		assert.ErrorIs(t, err, money.ErrInvalidAmount)
	})

	t.Run("negative input rejected", func(t *testing.T) {
		_, err := money.Parse("-5000")
		assert.ErrorIs(t, err, money.ErrInvalidAmount)
	})
}

func TestFormat(t *testing.T) {
	d := decimal.RequireFromString("20000")
	assert.Equal(t, "20000.00", money.Format(d))
}
