package core

import "github.com/shopspring/decimal"

// =============================================================================
// MONEY / HOURS HELPERS
// =============================================================================

var hundred = decimal.NewFromInt(100)

// Round2 rounds to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// Percent returns part/whole*100 capped at 100. A non-positive whole yields zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	p := part.Div(whole).Mul(hundred)
	if p.GreaterThan(hundred) {
		return hundred
	}
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}

// NonNegative clamps d at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
