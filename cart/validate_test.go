package cart

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func ruleOf(t *testing.T, err error) *RuleError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a rule error, got nil")
	}
	ruleErr, ok := err.(*RuleError)
	if !ok {
		t.Fatalf("expected *RuleError, got %T: %v", err, err)
	}
	return ruleErr
}

func TestValidateAccountMustMatchProduct(t *testing.T) {
	s := NewSession("s1", "b1", 1, KindInvoice)
	water := waterServiceProduct()
	s.AddProduct(water)
	s.SetCustomer(Party{ID: 5, Name: "Nguyen Van A"}, []ExpiryAccount{
		{AccountID: 11, AccountName: "OTHER-ACC", ProductID: 99},
	})

	start := time.Now()
	s.SetExpiry(water.ID, true, 11, "OTHER-ACC", &start, ExpiryDuration{Value: decimal.NewFromInt(6), Unit: "month"})

	ruleErr := ruleOf(t, s.Validate())
	if ruleErr.Rule != RuleExpiryAccountMismatch {
		t.Fatalf("rule = %q, want %q", ruleErr.Rule, RuleExpiryAccountMismatch)
	}
	if ruleErr.Entity != water.Name {
		t.Fatalf("entity = %q, want product name", ruleErr.Entity)
	}
}

func TestValidateExpiryDurationRequired(t *testing.T) {
	s := NewSession("s1", "b1", 1, KindInvoice)
	water := waterServiceProduct()
	s.AddProduct(water)
	s.SetExpiry(water.ID, true, 0, "", nil, ExpiryDuration{})

	ruleErr := ruleOf(t, s.Validate())
	if ruleErr.Rule != RuleExpiryDuration {
		t.Fatalf("rule = %q, want %q", ruleErr.Rule, RuleExpiryDuration)
	}

	// A positive duration fixes it.
	s.SetExpiry(water.ID, true, 0, "", nil, ExpiryDuration{Value: decimal.NewFromInt(6), Unit: "month"})
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error after entering a duration: %v", err)
	}
}

func TestValidateAccountAndStartDateTogether(t *testing.T) {
	s := NewSession("s1", "b1", 1, KindInvoice)
	water := waterServiceProduct()
	s.AddProduct(water)

	duration := ExpiryDuration{Value: decimal.NewFromInt(1), Unit: "year"}

	// Account without a start date.
	s.SetExpiry(water.ID, true, 11, "WTR-0001", nil, duration)
	ruleErr := ruleOf(t, s.Validate())
	if ruleErr.Rule != RuleExpiryAccountAndDate {
		t.Fatalf("rule = %q, want %q", ruleErr.Rule, RuleExpiryAccountAndDate)
	}

	// Start date without an account.
	start := time.Now()
	s.SetExpiry(water.ID, true, 0, "", &start, duration)
	ruleErr = ruleOf(t, s.Validate())
	if ruleErr.Rule != RuleExpiryAccountAndDate {
		t.Fatalf("rule = %q, want %q", ruleErr.Rule, RuleExpiryAccountAndDate)
	}

	// Both present passes.
	s.SetExpiry(water.ID, true, 11, "WTR-0001", &start, duration)
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error with account and date: %v", err)
	}
}

func TestValidateContractCollectsMissingFields(t *testing.T) {
	s := NewSession("s1", "b1", 1, KindPurchaseOrder)
	s.AddProduct(riceProduct())
	s.SetContract("HD-01", true, nil)
	s.SetSupplier(Party{ID: 9, Name: "Cong Ty ABC"})

	ruleErr := ruleOf(t, s.Validate())
	if ruleErr.Rule != RuleContractFields {
		t.Fatalf("rule = %q, want %q", ruleErr.Rule, RuleContractFields)
	}
	for _, field := range []string{"phone", "identity/tax id", "expected delivery date"} {
		if !strings.Contains(ruleErr.Message, field) {
			t.Fatalf("message %q must name missing field %q", ruleErr.Message, field)
		}
	}
	if strings.Contains(ruleErr.Message, "name,") {
		t.Fatalf("message %q must not report the present name", ruleErr.Message)
	}

	delivery := time.Now().AddDate(0, 0, 14)
	s.SetSupplier(Party{ID: 9, Name: "Cong Ty ABC", Phone: "0987654321", IdentityID: "0312345678"})
	s.SetContract("HD-01", true, &delivery)
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error with complete contract fields: %v", err)
	}
}

func TestValidateContractUsesCustomerForInvoices(t *testing.T) {
	s := NewSession("s1", "b1", 1, KindInvoice)
	s.AddProduct(riceProduct())
	s.IsPrintContract = true

	ruleErr := ruleOf(t, s.Validate())
	if ruleErr.Rule != RuleContractFields {
		t.Fatalf("rule = %q, want %q", ruleErr.Rule, RuleContractFields)
	}
	if !strings.Contains(ruleErr.Message, "name") {
		t.Fatalf("missing customer must surface all contact fields, got %q", ruleErr.Message)
	}
}

func TestValidateWithoutContractSkipsContractRule(t *testing.T) {
	s := NewSession("s1", "b1", 1, KindPurchaseOrder)
	s.AddProduct(riceProduct())
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error without contract printing: %v", err)
	}
}

func TestValidateCustomerContact(t *testing.T) {
	cases := []struct {
		name     string
		fullName string
		phone    string
		identity string
		email    string
		wantErr  bool
	}{
		{"valid", "Nguyen Van A", "0912345678", "012345678901", "a@example.com", false},
		{"valid without email", "Nguyen Van A", "0912345678", "012345678901", "", false},
		{"missing name", "", "0912345678", "012345678901", "", true},
		{"phone too short", "Nguyen Van A", "091234567", "012345678901", "", true},
		{"phone not starting with zero", "Nguyen Van A", "9912345678", "012345678901", "", true},
		{"identity too short", "Nguyen Van A", "0912345678", "01234567890", "", true},
		{"bad email", "Nguyen Van A", "0912345678", "012345678901", "not-an-email", true},
	}
	for _, tc := range cases {
		err := ValidateCustomerContact(tc.fullName, tc.phone, tc.identity, tc.email)
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected an error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if tc.wantErr {
			if ruleErr := ruleOf(t, err); ruleErr.Rule != RuleCustomerContact {
				t.Fatalf("%s: rule = %q, want %q", tc.name, ruleErr.Rule, RuleCustomerContact)
			}
		}
	}
}

func TestValidateDoesNotMutateState(t *testing.T) {
	s := NewSession("s1", "b1", 1, KindInvoice)
	water := waterServiceProduct()
	s.AddProduct(water)
	s.SetExpiry(water.ID, true, 0, "", nil, ExpiryDuration{})

	before, _ := s.LineState(water.ID)
	_ = s.Validate()
	after, _ := s.LineState(water.ID)

	if before.ApplyExpiry != after.ApplyExpiry || before.ExpiryAccountName != after.ExpiryAccountName {
		t.Fatalf("validation must leave line state untouched")
	}
}
