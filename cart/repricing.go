package cart

import "github.com/shopspring/decimal"

// ApplyPriceUpdate reconciles a pushed catalog price change with the cart.
// The shared base-price snapshot is always updated, so lines added later see
// the new price. The line's displayed price recomputes only when the product
// is currently selected without a price override; an explicit override
// outranks the catalog update and is left untouched.
//
// Returns true when a selected line's displayed price changed.
func (s *Session) ApplyPriceUpdate(productID int, newPrice decimal.Decimal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.basePrices[productID] = newPrice
	if p, ok := s.products[productID]; ok {
		p.BasePrice = newPrice
		s.products[productID] = p
	}

	line, selected := s.lines[productID]
	if !selected {
		return false
	}
	return line.PriceOverride == nil
}
