package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEffectivePriceDerivesFromUnit(t *testing.T) {
	p := riceProduct()

	line := &LineState{ProductID: p.ID, UnitID: 1}
	if got := EffectivePrice(line, p, p.BasePrice); !got.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("base unit price = %s, want 100000", got)
	}

	line.UnitID = 2
	if got := EffectivePrice(line, p, p.BasePrice); !got.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("kg price = %s, want 100000/10 = 10000", got)
	}
}

func TestEffectivePriceOverrideWins(t *testing.T) {
	p := riceProduct()
	override := decimal.NewFromInt(9500)
	line := &LineState{ProductID: p.ID, UnitID: 2, PriceOverride: &override}

	if got := EffectivePrice(line, p, p.BasePrice); !got.Equal(override) {
		t.Fatalf("override price = %s, want %s unmodified", got, override)
	}
}

func TestCalculateLineAmounts(t *testing.T) {
	p := riceProduct()
	line := &LineState{
		ProductID:      p.ID,
		UnitID:         2,
		Quantity:       decimal.NewFromInt(25),
		Discount:       decimal.NewFromInt(50000),
		SelectedTaxIDs: []int{7},
	}

	amounts := CalculateLine(line, p, p.BasePrice)

	// 25 kg at 10000 each.
	if !amounts.Price.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("price = %s, want 10000", amounts.Price)
	}
	if !amounts.SubTotal.Equal(decimal.NewFromInt(200000)) {
		t.Fatalf("subTotal = %s, want 250000-50000 = 200000", amounts.SubTotal)
	}
	// Tax applies to the undiscounted amount.
	if !amounts.TaxAmount.Equal(decimal.NewFromInt(25000)) {
		t.Fatalf("taxAmount = %s, want 10%% of 250000 = 25000", amounts.TaxAmount)
	}
	if !amounts.Total.Equal(decimal.NewFromInt(225000)) {
		t.Fatalf("total = %s, want 225000", amounts.Total)
	}
	if !amounts.BaseQuantity.Equal(decimal.NewFromFloat(2.5)) {
		t.Fatalf("baseQuantity = %s, want 25/10 = 2.5", amounts.BaseQuantity)
	}
}

func TestCalculateLineDiscountClampsAtZero(t *testing.T) {
	p := riceProduct()
	line := &LineState{
		ProductID: p.ID,
		UnitID:    1,
		Quantity:  decimal.NewFromInt(1),
		Discount:  decimal.NewFromInt(150000),
	}

	amounts := CalculateLine(line, p, p.BasePrice)
	if !amounts.SubTotal.IsZero() {
		t.Fatalf("subTotal = %s, want clamped to 0", amounts.SubTotal)
	}
	if !amounts.Total.IsZero() {
		t.Fatalf("total = %s, want 0", amounts.Total)
	}
}

func TestCalculateLineIgnoresUnknownAndDuplicateTaxes(t *testing.T) {
	p := riceProduct()
	line := &LineState{
		ProductID:      p.ID,
		UnitID:         1,
		Quantity:       decimal.NewFromInt(1),
		SelectedTaxIDs: []int{7, 7, 42},
	}

	amounts := CalculateLine(line, p, p.BasePrice)
	if !amounts.TaxAmount.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("taxAmount = %s, want the single matched 10%% = 10000", amounts.TaxAmount)
	}
}

func TestCalculateLineWarrantyCopy(t *testing.T) {
	p := riceProduct()
	p.Warranty = &WarrantyPolicy{
		PeriodMonths: 12,
		Conditions:   "covers manufacturing defects",
		Cost:         decimal.NewFromInt(20000),
	}
	line := &LineState{ProductID: p.ID, UnitID: 1, Quantity: decimal.NewFromInt(1)}

	amounts := CalculateLine(line, p, p.BasePrice)
	if amounts.Conditions != nil || amounts.PeriodMonths != nil || amounts.WarrantyCost != nil {
		t.Fatalf("warranty fields must stay empty until applied")
	}

	line.ApplyWarranty = true
	amounts = CalculateLine(line, p, p.BasePrice)
	if amounts.PeriodMonths == nil || *amounts.PeriodMonths != 12 {
		t.Fatalf("periodMonths = %v, want 12", amounts.PeriodMonths)
	}
	if amounts.WarrantyCost == nil || !amounts.WarrantyCost.Equal(decimal.NewFromInt(20000)) {
		t.Fatalf("warrantyCost = %v, want 20000", amounts.WarrantyCost)
	}
}

func TestAggregateTotals(t *testing.T) {
	lines := []LineAmounts{
		{SubTotal: decimal.NewFromInt(200000), TaxAmount: decimal.NewFromInt(25000), Discount: decimal.NewFromInt(50000)},
		{SubTotal: decimal.NewFromInt(100000), TaxAmount: decimal.Zero, Discount: decimal.Zero},
	}
	totals := AggregateTotals(lines, decimal.NewFromInt(15000))

	if !totals.SubTotal.Equal(decimal.NewFromInt(300000)) {
		t.Fatalf("subTotal = %s, want 300000", totals.SubTotal)
	}
	if !totals.TaxAmount.Equal(decimal.NewFromInt(25000)) {
		t.Fatalf("taxAmount = %s, want 25000", totals.TaxAmount)
	}
	if !totals.Discount.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("discount = %s, want 50000", totals.Discount)
	}
	if !totals.GrandTotal.Equal(decimal.NewFromInt(340000)) {
		t.Fatalf("grandTotal = %s, want 300000+25000+15000 = 340000", totals.GrandTotal)
	}
}
