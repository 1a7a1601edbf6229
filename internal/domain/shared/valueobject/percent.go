package valueobject

import (
	"errors"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent is a value object for percentages constrained to [0, 100].
// Used for line discounts and VAT rates.
type Percent struct {
	value decimal.Decimal
}

// NewPercent creates a Percent, rejecting values outside [0, 100]
func NewPercent(value decimal.Decimal) (Percent, error) {
	if value.IsNegative() || value.GreaterThan(hundred) {
		return Percent{}, errors.New("percentage must be between 0 and 100")
	}
	return Percent{value: value}, nil
}

// NewPercentFromFloat creates a Percent from a float64 value
func NewPercentFromFloat(value float64) (Percent, error) {
	return NewPercent(decimal.NewFromFloat(value))
}

// ZeroPercent returns a zero-value Percent
func ZeroPercent() Percent {
	return Percent{value: decimal.Zero}
}

// Value returns the raw percentage value
func (p Percent) Value() decimal.Decimal {
	return p.value
}

// ApplyTo returns base × percent / 100 at full precision
func (p Percent) ApplyTo(base decimal.Decimal) decimal.Decimal {
	return base.Mul(p.value).Div(hundred)
}

// IsZero returns true if the percentage is zero
func (p Percent) IsZero() bool {
	return p.value.IsZero()
}

// Float64 returns the percentage as a float64
func (p Percent) Float64() float64 {
	f, _ := p.value.Float64()
	return f
}

// String returns the percentage with two decimal places
func (p Percent) String() string {
	return p.value.StringFixed(2)
}
