package cart

import "github.com/shopspring/decimal"

// OrderTotals are the order-level aggregates over all lines.
type OrderTotals struct {
	SubTotal      decimal.Decimal `json:"sub_total"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	Discount      decimal.Decimal `json:"discount"`
	OtherExpenses decimal.Decimal `json:"other_expenses"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// AggregateTotals sums line subtotals, taxes and discounts and adds the flat
// other-expenses amount. Plain addition only, so the result is independent
// of line order.
func AggregateTotals(lines []LineAmounts, otherExpenses decimal.Decimal) OrderTotals {
	totals := OrderTotals{
		SubTotal:      decimal.Zero,
		TaxAmount:     decimal.Zero,
		Discount:      decimal.Zero,
		OtherExpenses: otherExpenses,
	}
	for _, line := range lines {
		totals.SubTotal = totals.SubTotal.Add(line.SubTotal)
		totals.TaxAmount = totals.TaxAmount.Add(line.TaxAmount)
		totals.Discount = totals.Discount.Add(line.Discount)
	}
	totals.GrandTotal = totals.SubTotal.Add(totals.TaxAmount).Add(otherExpenses)
	return totals
}
