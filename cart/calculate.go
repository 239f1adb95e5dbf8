package cart

import (
	"github.com/katecvn/katecvn-kim-dang-client-sub001/utils"
	"github.com/shopspring/decimal"
)

// LineAmounts is the fully computed view of one cart line.
type LineAmounts struct {
	ProductID        int              `json:"product_id"`
	ProductName      string           `json:"product_name"`
	UnitID           int              `json:"unit_id"`
	UnitName         string           `json:"unit_name"`
	ConversionFactor decimal.Decimal  `json:"conversion_factor"`
	Quantity         decimal.Decimal  `json:"quantity"`
	BaseQuantity     decimal.Decimal  `json:"base_quantity"`
	Price            decimal.Decimal  `json:"price"`
	SubTotal         decimal.Decimal  `json:"sub_total"`
	TaxAmount        decimal.Decimal  `json:"tax_amount"`
	Discount         decimal.Decimal  `json:"discount"`
	Total            decimal.Decimal  `json:"total"`
	Note             string           `json:"note"`
	Giveaway         decimal.Decimal  `json:"giveaway"`
	ApplyWarranty    bool             `json:"apply_warranty"`
	Conditions       *string          `json:"conditions"`
	PeriodMonths     *int             `json:"period_months"`
	WarrantyCost     *decimal.Decimal `json:"warranty_cost"`
}

// CalculateLine computes a line's amounts from its resolved price, quantity,
// discount and selected taxes:
//   - subTotal = max(qty × price − discount, 0); discounts never push a line
//     below zero
//   - taxAmount sums qty × price × pct/100 over the selected taxes, matched
//     against the product's declared rates; unmatched tax ids are ignored
//   - baseQuantity re-expresses the quantity in the product's base unit
//
// Warranty policy fields are copied onto the line only when the user applied
// the warranty.
func CalculateLine(line *LineState, p Product, basePrice decimal.Decimal) LineAmounts {
	factor := FactorFor(p, line.UnitID)
	price := EffectivePrice(line, p, basePrice)

	rawAmount := line.Quantity.Mul(price)
	subTotal := rawAmount.Sub(line.Discount)
	if subTotal.IsNegative() {
		subTotal = decimal.Zero
	}

	taxAmount := decimal.Zero
	if len(line.SelectedTaxIDs) > 0 {
		rates := make(map[int]decimal.Decimal, len(p.TaxRates))
		for _, rate := range p.TaxRates {
			rates[rate.TaxID] = rate.Percentage
		}
		for _, taxID := range utils.UniqueSlice(line.SelectedTaxIDs) {
			pct, ok := rates[taxID]
			if !ok {
				continue
			}
			taxAmount = taxAmount.Add(utils.PercentOf(rawAmount, pct))
		}
	}

	baseQuantity := line.Quantity
	if factor.IsPositive() {
		baseQuantity = line.Quantity.DivRound(factor, 4)
	}

	amounts := LineAmounts{
		ProductID:        p.ID,
		ProductName:      p.Name,
		UnitID:           line.UnitID,
		UnitName:         UnitNameFor(p, line.UnitID),
		ConversionFactor: factor,
		Quantity:         line.Quantity,
		BaseQuantity:     baseQuantity,
		Price:            price,
		SubTotal:         subTotal,
		TaxAmount:        taxAmount,
		Discount:         line.Discount,
		Total:            subTotal.Add(taxAmount),
		Note:             line.Note,
		Giveaway:         line.GiveawayQuantity,
		ApplyWarranty:    line.ApplyWarranty,
	}

	if line.ApplyWarranty && p.Warranty != nil {
		conditions := p.Warranty.Conditions
		periodMonths := p.Warranty.PeriodMonths
		warrantyCost := p.Warranty.Cost
		amounts.Conditions = &conditions
		amounts.PeriodMonths = &periodMonths
		amounts.WarrantyCost = &warrantyCost
	}

	return amounts
}
