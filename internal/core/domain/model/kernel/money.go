package kernel

import (
	"fmt"
	"math"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
)

// Money is a value object representing a monetary amount in cents.
// Storing integer cents avoids floating-point drift when aggregate totals
// are recomputed over an order set.
//
// The zero value represents zero cents and is valid: freight values and
// totals legitimately start at zero before computation.
type Money struct {
	cents int64
}

// NewMoney creates a Money value from an amount in cents.
// Negative amounts are invalid.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d cents is negative", cents))
	}
	return Money{cents: cents}, nil
}

// MoneyFromFloat creates a Money value from a decimal currency amount,
// rounding half away from zero to whole cents.
func MoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(int64(math.Round(amount * 100)))
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float returns the amount as a decimal currency value.
func (m Money) Float() float64 {
	return float64(m.cents) / 100
}

// Add returns the sum of two monetary amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// IsZero reports whether the amount is zero cents.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsEqual compares two monetary amounts by value.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String formats the amount as a decimal with two fraction digits.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
