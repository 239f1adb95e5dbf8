package cart

import (
	"testing"

	"github.com/katecvn/katecvn-kim-dang-client-sub001/utils"
	"github.com/shopspring/decimal"
)

func TestRegistryOpenGetClose(t *testing.T) {
	r := NewRegistry()
	session := r.Open("b1", 1, KindInvoice)
	if session.ID == "" {
		t.Fatalf("open must assign a session id")
	}

	got, err := r.Get(session.ID)
	if err != nil || got != session {
		t.Fatalf("Get returned %v, %v", got, err)
	}

	r.Close(session.ID)
	if _, err := r.Get(session.ID); err != utils.ErrorSessionNotFound {
		t.Fatalf("closed session must be gone, got err %v", err)
	}
	if r.Count() != 0 {
		t.Fatalf("count = %d after close, want 0", r.Count())
	}
}

func TestRegistryCloseIsIdempotent(t *testing.T) {
	r := NewRegistry()
	session := r.Open("b1", 1, KindInvoice)
	r.Close(session.ID)
	r.Close(session.ID)
	r.Close("never-existed")
}

func TestRegistryForBusiness(t *testing.T) {
	r := NewRegistry()
	a1 := r.Open("a", 1, KindInvoice)
	a2 := r.Open("a", 2, KindPurchaseOrder)
	r.Open("b", 3, KindInvoice)

	sessions := r.ForBusiness("a")
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions for business a, got %d", len(sessions))
	}
	seen := map[string]bool{}
	for _, s := range sessions {
		seen[s.ID] = true
	}
	if !seen[a1.ID] || !seen[a2.ID] {
		t.Fatalf("wrong sessions returned")
	}
}

func TestRegistryDispatchOnlyReachesOpenSessions(t *testing.T) {
	r := NewRegistry()
	open := r.Open("a", 1, KindInvoice)
	closed := r.Open("a", 2, KindInvoice)
	p := riceProduct()
	open.AddProduct(p)
	closed.AddProduct(p)
	r.Close(closed.ID)

	for _, s := range r.ForBusiness("a") {
		s.ApplyPriceUpdate(p.ID, decimal.NewFromInt(120000))
	}

	if !open.Lines()[0].Price.Equal(decimal.NewFromInt(120000)) {
		t.Fatalf("open session must reprice")
	}
	if len(closed.Lines()) != 0 {
		t.Fatalf("closed session must have been reset")
	}
}
