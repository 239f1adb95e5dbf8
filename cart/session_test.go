package cart

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func waterServiceProduct() Product {
	return Product{
		ID:           2,
		Name:         "Water Service",
		BasePrice:    decimal.NewFromInt(240000),
		BaseUnitID:   3,
		BaseUnitName: "year",
		Conversions: []UnitConversion{
			{UnitID: 4, UnitName: "month", Factor: decimal.NewFromInt(12)},
		},
		HasExpiry: true,
	}
}

func TestAddProductToggles(t *testing.T) {
	s := NewSession("s1", "b1", 1, KindInvoice)
	p := riceProduct()

	if selected := s.AddProduct(p); !selected {
		t.Fatalf("first add must select the product")
	}
	if !s.HasProduct(p.ID) {
		t.Fatalf("product must be selected after add")
	}

	if selected := s.AddProduct(p); selected {
		t.Fatalf("second add must deselect the product")
	}
	if s.HasProduct(p.ID) {
		t.Fatalf("product must be gone after toggle-off")
	}
	if _, ok := s.LineState(p.ID); ok {
		t.Fatalf("no line state may remain after toggle-off")
	}
}

func TestAddProductDefaultsLine(t *testing.T) {
	s := NewSession("s1", "b1", 1, KindInvoice)
	p := riceProduct()
	s.AddProduct(p)

	line, ok := s.LineState(p.ID)
	if !ok {
		t.Fatalf("line state missing")
	}
	if line.UnitID != p.BaseUnitID {
		t.Fatalf("unit = %d, want base unit %d", line.UnitID, p.BaseUnitID)
	}
	if !line.Quantity.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("quantity = %s, want 1", line.Quantity)
	}
	if line.PriceOverride != nil {
		t.Fatalf("a fresh line must not carry a price override")
	}
}

func TestRemoveProductLeavesNothingBehind(t *testing.T) {
	s := NewSession("s1", "b1", 1, KindInvoice)
	p := riceProduct()
	s.AddProduct(p)
	s.SetNote(p.ID, "fragile")
	s.SetDiscount(p.ID, decimal.NewFromInt(5000))

	s.RemoveProduct(p.ID)

	if s.HasProduct(p.ID) {
		t.Fatalf("product still selected after remove")
	}
	if _, ok := s.LineState(p.ID); ok {
		t.Fatalf("line state must be deleted with the product")
	}
	if len(s.Lines()) != 0 {
		t.Fatalf("no computed lines expected, got %d", len(s.Lines()))
	}
}

func TestReplaceSelectionPreservesKeptLines(t *testing.T) {
	s := NewSession("s1", "b1", 1, KindInvoice)
	rice := riceProduct()
	water := waterServiceProduct()
	s.AddProduct(rice)
	s.AddProduct(water)

	s.SetQuantity(rice.ID, decimal.NewFromInt(7))
	s.SetNote(rice.ID, "keep me")

	other := Product{ID: 3, Name: "Sugar", BasePrice: decimal.NewFromInt(30000), BaseUnitID: 1, BaseUnitName: "kg"}
	s.ReplaceSelection([]Product{rice, other})

	if s.HasProduct(water.ID) {
		t.Fatalf("dropped product must be removed")
	}
	if !s.HasProduct(other.ID) {
		t.Fatalf("new product must be added")
	}
	line, _ := s.LineState(rice.ID)
	if !line.Quantity.Equal(decimal.NewFromInt(7)) || line.Note != "keep me" {
		t.Fatalf("kept line lost its edits: %+v", line)
	}
}

func TestSetUnitClearsPriceOverride(t *testing.T) {
	s := NewSession("s1", "b1", 1, KindInvoice)
	p := riceProduct()
	s.AddProduct(p)

	override := decimal.NewFromInt(95000)
	s.SetPriceOverride(p.ID, &override)
	line, _ := s.LineState(p.ID)
	if line.PriceOverride == nil {
		t.Fatalf("override not stored")
	}

	s.SetUnit(p.ID, 2)
	line, _ = s.LineState(p.ID)
	if line.PriceOverride != nil {
		t.Fatalf("changing unit must clear the override")
	}

	amounts := s.Lines()[0]
	if !amounts.Price.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("price = %s, want re-derived 10000", amounts.Price)
	}
}

func TestEditsIgnoreUnknownProducts(t *testing.T) {
	s := NewSession("s1", "b1", 1, KindInvoice)
	s.SetQuantity(42, decimal.NewFromInt(3))
	s.SetNote(42, "ghost")
	s.SetUnit(42, 2)
	if len(s.Lines()) != 0 {
		t.Fatalf("edits on an unselected product must not create lines")
	}
}

func TestInvalidEditsAreIgnored(t *testing.T) {
	s := NewSession("s1", "b1", 1, KindInvoice)
	p := riceProduct()
	s.AddProduct(p)

	s.SetQuantity(p.ID, decimal.Zero)
	s.SetQuantity(p.ID, decimal.NewFromInt(-2))
	s.SetDiscount(p.ID, decimal.NewFromInt(-1))

	line, _ := s.LineState(p.ID)
	if !line.Quantity.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("quantity = %s, want untouched 1", line.Quantity)
	}
	if !line.Discount.IsZero() {
		t.Fatalf("discount = %s, want untouched 0", line.Discount)
	}
}

func TestSetCustomerPrefillsExpiry(t *testing.T) {
	s := NewSession("s1", "b1", 1, KindInvoice)
	water := waterServiceProduct()
	s.AddProduct(water)

	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	s.SetCustomer(Party{ID: 5, Name: "Nguyen Van A"}, []ExpiryAccount{
		{
			AccountID:   11,
			AccountName: "WTR-0001",
			ProductID:   water.ID,
			Expiries: []ExpiryTerm{
				{EndDate: end.AddDate(0, -6, 0)},
				{EndDate: end},
			},
		},
	})

	line, _ := s.LineState(water.ID)
	if !line.ApplyExpiry {
		t.Fatalf("expiry must be switched on by a matching account")
	}
	if line.ExpiryAccountName != "WTR-0001" {
		t.Fatalf("accountName = %q", line.ExpiryAccountName)
	}
	wantStart := end.AddDate(0, 0, 1)
	if line.ExpiryStartDate == nil || !line.ExpiryStartDate.Equal(wantStart) {
		t.Fatalf("startDate = %v, want latest end + 1 day = %v", line.ExpiryStartDate, wantStart)
	}
}

func TestSetCustomerPrefillsLaterAdds(t *testing.T) {
	s := NewSession("s1", "b1", 1, KindInvoice)
	water := waterServiceProduct()
	s.SetCustomer(Party{ID: 5, Name: "Nguyen Van A"}, []ExpiryAccount{
		{AccountID: 11, AccountName: "WTR-0001", ProductID: water.ID},
	})

	s.AddProduct(water)
	line, _ := s.LineState(water.ID)
	if !line.ApplyExpiry || line.ExpiryAccountID != 11 {
		t.Fatalf("a product added after the customer must still be pre-filled: %+v", line)
	}
}

func TestResetClearsEverything(t *testing.T) {
	s := NewSession("s1", "b1", 1, KindPurchaseOrder)
	s.AddProduct(riceProduct())
	s.SetSupplier(Party{ID: 9, Name: "ABC"})
	s.SetOtherExpenses(decimal.NewFromInt(5000))
	s.SetContract("HD-01", true, nil)

	s.Reset()

	if len(s.Lines()) != 0 || s.Supplier() != nil {
		t.Fatalf("reset must clear lines and parties")
	}
	if !s.OtherExpenses.IsZero() || s.ContractNumber != "" || s.IsPrintContract {
		t.Fatalf("reset must clear order-level fields")
	}
}
