package cart

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Session owns one open cart: the selected-product set, the per-product line
// state and the order-level fields. Every mutation goes through a method
// under the session mutex, so user edits and pushed price updates share one
// serialized path. Unknown product ids are treated as no-ops; nothing in
// here can fail except by programmer error.
type Session struct {
	mu sync.Mutex

	ID         string
	BusinessID string
	UserID     int
	Kind       OrderKind
	CreatedAt  time.Time

	// Catalog snapshots survive line removal so re-adding a product does not
	// refetch, and live price updates land even for products not currently
	// selected.
	products   map[int]Product
	basePrices map[int]decimal.Decimal

	lines map[int]*LineState
	order []int // selection order of product ids

	customer       *Party
	supplier       *Party
	expiryAccounts []ExpiryAccount

	PaymentMethod        string
	OtherExpenses        decimal.Decimal
	ContractNumber       string
	IsPrintContract      bool
	ExpectedDeliveryDate *time.Time
}

func NewSession(id string, businessID string, userID int, kind OrderKind) *Session {
	return &Session{
		ID:            id,
		BusinessID:    businessID,
		UserID:        userID,
		Kind:          kind,
		CreatedAt:     time.Now().UTC(),
		products:      make(map[int]Product),
		basePrices:    make(map[int]decimal.Decimal),
		lines:         make(map[int]*LineState),
		OtherExpenses: decimal.Zero,
	}
}

// SetCustomer attaches the selected customer and their expiry accounts.
// Lines already in the cart are pre-filled from matching accounts.
func (s *Session) SetCustomer(customer Party, accounts []ExpiryAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = &customer
	s.expiryAccounts = accounts
	for _, line := range s.lines {
		s.prefillExpiryLocked(line)
	}
}

func (s *Session) SetSupplier(supplier Party) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supplier = &supplier
}

func (s *Session) Customer() *Party {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customer
}

func (s *Session) Supplier() *Party {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.supplier
}

// AddProduct toggles a product into or out of the selection: adding an
// already-selected product removes it instead (multi-select UI convenience).
// Returns true when the product ended up selected.
func (s *Session) AddProduct(p Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, selected := s.lines[p.ID]; selected {
		s.removeLineLocked(p.ID)
		return false
	}
	s.addLineLocked(p)
	return true
}

// ReplaceSelection reconciles the cart against a new target product set:
// lines for products no longer present are deleted, new products get default
// line state, and products present both before and after keep their line
// untouched so in-progress edits survive a re-derived selection list.
func (s *Session) ReplaceSelection(products []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := make(map[int]bool, len(products))
	for _, p := range products {
		target[p.ID] = true
	}
	for _, id := range append([]int(nil), s.order...) {
		if !target[id] {
			s.removeLineLocked(id)
		}
	}
	for _, p := range products {
		if _, selected := s.lines[p.ID]; !selected {
			s.addLineLocked(p)
		}
	}
}

// RemoveProduct deletes the product from the selection together with its
// entire line state in one step; nothing is left behind for the id.
func (s *Session) RemoveProduct(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLineLocked(productID)
}

func (s *Session) addLineLocked(p Product) {
	s.products[p.ID] = p
	if _, ok := s.basePrices[p.ID]; !ok {
		s.basePrices[p.ID] = p.BasePrice
	}
	line := &LineState{
		ProductID: p.ID,
		UnitID:    p.BaseUnitID,
		Quantity:  one,
		Discount:  decimal.Zero,
	}
	s.prefillExpiryLocked(line)
	s.lines[p.ID] = line
	s.order = append(s.order, p.ID)
}

func (s *Session) removeLineLocked(productID int) {
	if _, selected := s.lines[productID]; !selected {
		return
	}
	delete(s.lines, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// prefillExpiryLocked applies a matching customer expiry account to a line:
// the account id/name are filled in, expiry is switched on, and the start
// date defaults to the account's latest end date plus one day.
func (s *Session) prefillExpiryLocked(line *LineState) {
	for _, account := range s.expiryAccounts {
		if account.ProductID != line.ProductID {
			continue
		}
		line.ApplyExpiry = true
		line.ExpiryAccountID = account.AccountID
		line.ExpiryAccountName = account.AccountName
		if latest := latestEndDate(account.Expiries); latest != nil {
			start := latest.AddDate(0, 0, 1)
			line.ExpiryStartDate = &start
		}
		return
	}
}

func latestEndDate(terms []ExpiryTerm) *time.Time {
	var latest *time.Time
	for i := range terms {
		end := terms[i].EndDate
		if end.IsZero() {
			continue
		}
		if latest == nil || end.After(*latest) {
			latest = &end
		}
	}
	return latest
}

// SetUnit switches the line's unit. Any price override is cleared so the
// price re-derives from the new unit's factor until the user re-enters one.
func (s *Session) SetUnit(productID int, unitID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line, ok := s.lines[productID]
	if !ok {
		return
	}
	line.UnitID = unitID
	line.PriceOverride = nil
}

func (s *Session) SetQuantity(productID int, quantity decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line, ok := s.lines[productID]
	if !ok {
		return
	}
	if quantity.IsPositive() {
		line.Quantity = quantity
	}
}

// SetPriceOverride sets or clears (nil) the user-entered unit price.
func (s *Session) SetPriceOverride(productID int, price *decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line, ok := s.lines[productID]
	if !ok {
		return
	}
	if price == nil {
		line.PriceOverride = nil
		return
	}
	override := *price
	line.PriceOverride = &override
}

func (s *Session) SetDiscount(productID int, discount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line, ok := s.lines[productID]
	if !ok {
		return
	}
	if discount.IsNegative() {
		return
	}
	line.Discount = discount
}

func (s *Session) SetNote(productID int, note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if line, ok := s.lines[productID]; ok {
		line.Note = note
	}
}

func (s *Session) SetGiveaway(productID int, quantity decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line, ok := s.lines[productID]
	if !ok {
		return
	}
	if quantity.IsNegative() {
		return
	}
	line.GiveawayQuantity = quantity
}

func (s *Session) SetTaxes(productID int, taxIDs []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if line, ok := s.lines[productID]; ok {
		line.SelectedTaxIDs = append([]int(nil), taxIDs...)
	}
}

func (s *Session) SetWarranty(productID int, apply bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if line, ok := s.lines[productID]; ok {
		line.ApplyWarranty = apply
	}
}

func (s *Session) SetExpiry(productID int, apply bool, accountID int, accountName string, startDate *time.Time, duration ExpiryDuration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line, ok := s.lines[productID]
	if !ok {
		return
	}
	line.ApplyExpiry = apply
	line.ExpiryAccountID = accountID
	line.ExpiryAccountName = accountName
	line.ExpiryStartDate = startDate
	line.ExpiryDuration = duration
}

func (s *Session) SetIncludeInContract(productID int, include bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if line, ok := s.lines[productID]; ok {
		line.IncludeInContract = include
	}
}

func (s *Session) SetOtherExpenses(amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if amount.IsNegative() {
		return
	}
	s.OtherExpenses = amount
}

func (s *Session) SetPaymentMethod(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PaymentMethod = method
}

func (s *Session) SetContract(number string, isPrint bool, expectedDelivery *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ContractNumber = number
	s.IsPrintContract = isPrint
	s.ExpectedDeliveryDate = expectedDelivery
}

// HasProduct reports whether the product is currently a selected line.
func (s *Session) HasProduct(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.lines[productID]
	return ok
}

// SelectedIDs returns product ids in selection order.
func (s *Session) SelectedIDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.order...)
}

// LineState returns a copy of the line's auxiliary state.
func (s *Session) LineState(productID int) (LineState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line, ok := s.lines[productID]
	if !ok {
		return LineState{}, false
	}
	return *line, true
}

// Lines returns the computed amounts for every selected line, in selection
// order. Pure re-evaluation of current state; nothing is cached.
func (s *Session) Lines() []LineAmounts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.linesLocked()
}

func (s *Session) linesLocked() []LineAmounts {
	results := make([]LineAmounts, 0, len(s.order))
	for _, id := range s.order {
		line := s.lines[id]
		product := s.products[id]
		results = append(results, CalculateLine(line, product, s.basePrices[id]))
	}
	return results
}

// Totals aggregates the order-level totals over all lines.
func (s *Session) Totals() OrderTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AggregateTotals(s.linesLocked(), s.OtherExpenses)
}

// Reset clears every line and order-level field, as when the dialog closes.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make(map[int]Product)
	s.basePrices = make(map[int]decimal.Decimal)
	s.lines = make(map[int]*LineState)
	s.order = nil
	s.customer = nil
	s.supplier = nil
	s.expiryAccounts = nil
	s.PaymentMethod = ""
	s.OtherExpenses = decimal.Zero
	s.ContractNumber = ""
	s.IsPrintContract = false
	s.ExpectedDeliveryDate = nil
}
