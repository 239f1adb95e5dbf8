package cart

import "github.com/shopspring/decimal"

// EffectivePrice resolves the unit price for one line. A user-entered
// override is authoritative and returned unmodified regardless of unit.
// Otherwise the price derives from the current base price divided by the
// selected unit's conversion factor; FactorFor guarantees the divisor is
// positive.
func EffectivePrice(line *LineState, p Product, basePrice decimal.Decimal) decimal.Decimal {
	if line.PriceOverride != nil {
		return *line.PriceOverride
	}
	factor := FactorFor(p, line.UnitID)
	if factor.Equal(one) {
		return basePrice
	}
	return basePrice.DivRound(factor, 4)
}
