package cart

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestBuildSubmissionTotalsEquation(t *testing.T) {
	s := NewSession("s1", "b1", 1, KindInvoice)
	rice := riceProduct()
	s.AddProduct(rice)
	s.SetQuantity(rice.ID, decimal.NewFromInt(3))
	s.SetTaxes(rice.ID, []int{7})
	s.SetDiscount(rice.ID, decimal.NewFromInt(20000))
	s.SetOtherExpenses(decimal.NewFromInt(15000))
	s.SetCustomer(Party{ID: 5, Name: "Nguyen Van A"}, nil)
	s.SetPaymentMethod("cash")

	sub := s.BuildSubmission()

	if sub.Kind != KindInvoice || sub.CustomerId != 5 || sub.SupplierId != 0 {
		t.Fatalf("header fields wrong: %+v", sub)
	}
	if len(sub.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(sub.Items))
	}

	want := sub.SubTotal.Add(sub.TaxAmount).Add(sub.Amount)
	if !sub.TotalAmount.Equal(want) {
		t.Fatalf("total_amount = %s, want sub_total + tax_amount + amount = %s", sub.TotalAmount, want)
	}
	if !sub.Amount.Equal(decimal.NewFromInt(15000)) {
		t.Fatalf("amount = %s, want other expenses 15000", sub.Amount)
	}

	item := sub.Items[0]
	if item.ProductId != rice.ID || !item.Quantity.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("item fields wrong: %+v", item)
	}
	if !item.SubTotal.Equal(decimal.NewFromInt(280000)) {
		t.Fatalf("item subTotal = %s, want 300000-20000 = 280000", item.SubTotal)
	}
}

func TestBuildSubmissionLeavesSessionIntact(t *testing.T) {
	s := NewSession("s1", "b1", 1, KindInvoice)
	rice := riceProduct()
	s.AddProduct(rice)
	s.SetNote(rice.ID, "keep")

	first := s.BuildSubmission()
	second := s.BuildSubmission()

	if len(first.Items) != 1 || len(second.Items) != 1 {
		t.Fatalf("building a submission must not consume the cart")
	}
	line, _ := s.LineState(rice.ID)
	if line.Note != "keep" {
		t.Fatalf("line state changed by submission build")
	}
}

func TestBuildSubmissionContractFieldsOnlyForPurchaseOrders(t *testing.T) {
	delivery := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	po := NewSession("s1", "b1", 1, KindPurchaseOrder)
	po.AddProduct(riceProduct())
	po.SetSupplier(Party{ID: 9, Name: "ABC"})
	po.SetContract("HD-01", true, &delivery)
	po.SetIncludeInContract(1, true)

	sub := po.BuildSubmission()
	if sub.ContractNumber != "HD-01" || !sub.IsPrintContract {
		t.Fatalf("contract fields missing on purchase order: %+v", sub)
	}
	if sub.ExpectedDeliveryDate == nil || !sub.ExpectedDeliveryDate.Equal(delivery) {
		t.Fatalf("expected delivery date = %v", sub.ExpectedDeliveryDate)
	}
	if !sub.Items[0].IncludeInContract {
		t.Fatalf("include_in_contract lost on the item")
	}

	inv := NewSession("s2", "b1", 1, KindInvoice)
	inv.AddProduct(riceProduct())
	inv.SetContract("HD-02", true, &delivery)
	invSub := inv.BuildSubmission()
	if invSub.ContractNumber != "" || invSub.IsPrintContract || invSub.ExpectedDeliveryDate != nil {
		t.Fatalf("invoice submissions must not carry contract fields: %+v", invSub)
	}
}

func TestBuildSubmissionExpiryFields(t *testing.T) {
	s := NewSession("s1", "b1", 1, KindInvoice)
	water := waterServiceProduct()
	s.AddProduct(water)

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	s.SetExpiry(water.ID, true, 11, "WTR-0001", &start, ExpiryDuration{Value: decimal.NewFromInt(6), Unit: "month"})

	item := s.BuildSubmission().Items[0]
	if !item.ApplyExpiry || item.AccountId != 11 || item.AccountName != "WTR-0001" {
		t.Fatalf("expiry fields wrong: %+v", item)
	}
	if item.StartDate != "2026-10-01" {
		t.Fatalf("startDate = %q, want 2026-10-01", item.StartDate)
	}
	if !item.ExpiryDuration.Equal(decimal.NewFromInt(6)) || item.ExpiryUnit != "month" {
		t.Fatalf("duration wrong: %s %s", item.ExpiryDuration, item.ExpiryUnit)
	}
}
