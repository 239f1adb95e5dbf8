package cart

import "github.com/shopspring/decimal"

// UnitOption is one selectable unit for a product.
type UnitOption struct {
	UnitID   int             `json:"unit_id"`
	UnitName string          `json:"unit_name"`
	Factor   decimal.Decimal `json:"factor"`
}

const fallbackUnitName = "unit"

var one = decimal.NewFromInt(1)

// UnitOptions lists the usable units for a product: the base unit first with
// factor 1, then each declared conversion. Non-positive declared factors are
// coerced to 1 so later division stays safe. Duplicate unit ids keep the
// first occurrence, so the base unit wins ties.
func UnitOptions(p Product) []UnitOption {
	options := make([]UnitOption, 0, len(p.Conversions)+1)
	seen := make(map[int]bool, len(p.Conversions)+1)

	options = append(options, UnitOption{
		UnitID:   p.BaseUnitID,
		UnitName: p.BaseUnitName,
		Factor:   one,
	})
	seen[p.BaseUnitID] = true

	for _, conv := range p.Conversions {
		if seen[conv.UnitID] {
			continue
		}
		seen[conv.UnitID] = true
		factor := conv.Factor
		if !factor.IsPositive() {
			factor = one
		}
		options = append(options, UnitOption{
			UnitID:   conv.UnitID,
			UnitName: conv.UnitName,
			Factor:   factor,
		})
	}
	return options
}

// FactorFor resolves the conversion factor for a unit relative to the base
// unit. Unknown or zero unit ids and non-positive factors all resolve to 1;
// the result is never zero or negative.
func FactorFor(p Product, unitID int) decimal.Decimal {
	if unitID == 0 {
		return one
	}
	for _, option := range UnitOptions(p) {
		if option.UnitID == unitID {
			if !option.Factor.IsPositive() {
				return one
			}
			return option.Factor
		}
	}
	return one
}

// UnitNameFor resolves a unit's display name, falling back to the base
// unit's name, then to a placeholder when nothing is known.
func UnitNameFor(p Product, unitID int) string {
	for _, option := range UnitOptions(p) {
		if option.UnitID == unitID && option.UnitName != "" {
			return option.UnitName
		}
	}
	if p.BaseUnitName != "" {
		return p.BaseUnitName
	}
	return fallbackUnitName
}
