package cart

import (
	"fmt"
	"strings"

	"github.com/katecvn/katecvn-kim-dang-client-sub001/utils"
)

// RuleError is a user-correctable validation failure. It names the rule and
// the entity so the screen can surface a precise, retryable message. Cart
// state is never modified by validation.
type RuleError struct {
	Rule    string `json:"rule"`
	Entity  string `json:"entity"`
	Message string `json:"message"`
}

func (e *RuleError) Error() string {
	if e.Entity == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Entity, e.Message)
}

const (
	RuleExpiryAccountMismatch = "expiry_account_mismatch"
	RuleExpiryDuration        = "expiry_duration_required"
	RuleExpiryAccountAndDate  = "expiry_account_and_date_required"
	RuleContractFields        = "contract_fields_required"
	RuleCustomerContact       = "customer_contact_invalid"
)

// Validate runs the pre-submit checks. Per-line rules short-circuit on the
// first failing product; the contract rule collects every missing field into
// one combined message instead.
func (s *Session) Validate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		line := s.lines[id]
		product := s.products[id]
		if err := s.validateLineLocked(line, product); err != nil {
			return err
		}
	}

	if s.IsPrintContract {
		if err := s.validateContractLocked(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) validateLineLocked(line *LineState, product Product) error {
	// An expiry account resolved by name must belong to this line's product.
	if line.ExpiryAccountName != "" {
		for _, account := range s.expiryAccounts {
			if account.AccountName != line.ExpiryAccountName {
				continue
			}
			if account.ProductID != 0 && account.ProductID != line.ProductID {
				return &RuleError{
					Rule:    RuleExpiryAccountMismatch,
					Entity:  product.Name,
					Message: "account does not match product",
				}
			}
			break
		}
	}

	if product.HasExpiry && line.ApplyExpiry {
		if !line.ExpiryDuration.Value.IsPositive() {
			return &RuleError{
				Rule:    RuleExpiryDuration,
				Entity:  product.Name,
				Message: "expiry duration is required",
			}
		}
	}

	// Account name and start date only make sense together.
	if line.ApplyExpiry {
		hasAccount := line.ExpiryAccountName != ""
		hasStart := line.ExpiryStartDate != nil && !line.ExpiryStartDate.IsZero()
		if hasAccount != hasStart {
			return &RuleError{
				Rule:    RuleExpiryAccountAndDate,
				Entity:  product.Name,
				Message: "expiry account and start date are required together",
			}
		}
	}

	return nil
}

// validateContractLocked gates contract printing: the counterpart's contact
// fields and the expected delivery date must all be present. Missing fields
// are reported in one message.
func (s *Session) validateContractLocked() error {
	party := s.customer
	if s.Kind == KindPurchaseOrder {
		party = s.supplier
	}

	var missing []string
	if party == nil || strings.TrimSpace(party.Name) == "" {
		missing = append(missing, "name")
	}
	if party == nil || strings.TrimSpace(party.Phone) == "" {
		missing = append(missing, "phone")
	}
	if party == nil || strings.TrimSpace(party.IdentityID) == "" {
		missing = append(missing, "identity/tax id")
	}
	if s.ExpectedDeliveryDate == nil || s.ExpectedDeliveryDate.IsZero() {
		missing = append(missing, "expected delivery date")
	}
	if len(missing) > 0 {
		entity := ""
		if party != nil {
			entity = party.Name
		}
		return &RuleError{
			Rule:    RuleContractFields,
			Entity:  entity,
			Message: "contract requires " + strings.Join(missing, ", "),
		}
	}
	return nil
}

// ValidateCustomerContact checks the contact fields entered when a customer
// is created inline from the order screen. Email is optional; the other
// fields are not.
func ValidateCustomerContact(name string, phone string, identity string, email string) error {
	if strings.TrimSpace(name) == "" {
		return &RuleError{
			Rule:    RuleCustomerContact,
			Entity:  name,
			Message: "customer name is required",
		}
	}
	if !utils.IsValidLocalPhone(phone) {
		return &RuleError{
			Rule:    RuleCustomerContact,
			Entity:  name,
			Message: "phone number must be 10 digits",
		}
	}
	if !utils.IsValidIdentityNumber(identity) {
		return &RuleError{
			Rule:    RuleCustomerContact,
			Entity:  name,
			Message: "identity number must be 12 digits",
		}
	}
	if email != "" && !utils.IsValidEmail(email) {
		return &RuleError{
			Rule:    RuleCustomerContact,
			Entity:  name,
			Message: "email is not valid",
		}
	}
	return nil
}
