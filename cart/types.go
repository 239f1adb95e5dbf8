package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderKind selects which submission path a session feeds.
type OrderKind string

const (
	KindInvoice       OrderKind = "Invoice"
	KindPurchaseOrder OrderKind = "PurchaseOrder"
)

// Product is the engine's read-only snapshot of one catalog record. The only
// field that changes after load is the base price, and that happens through
// the session's price store, never by mutating the snapshot.
type Product struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	BasePrice    decimal.Decimal `json:"base_price"`
	BaseUnitID   int             `json:"base_unit_id"`
	BaseUnitName string          `json:"base_unit_name"`
	Conversions  []UnitConversion `json:"conversions"`
	TaxRates     []TaxRate        `json:"tax_rates"`
	Warranty     *WarrantyPolicy  `json:"warranty"`
	HasExpiry    bool             `json:"has_expiry"`
}

// UnitConversion declares 1 base unit == Factor × unit.
type UnitConversion struct {
	UnitID   int             `json:"unit_id"`
	UnitName string          `json:"unit_name"`
	Factor   decimal.Decimal `json:"factor"`
}

// TaxRate is one tax available at the product's price tier.
type TaxRate struct {
	TaxID      int             `json:"tax_id"`
	Percentage decimal.Decimal `json:"percentage"`
}

type WarrantyPolicy struct {
	PeriodMonths int             `json:"period_months"`
	Conditions   string          `json:"conditions"`
	Cost         decimal.Decimal `json:"cost"`
}

// ExpiryDuration is a user-entered duration like {6, "month"}.
type ExpiryDuration struct {
	Value decimal.Decimal `json:"value"`
	Unit  string          `json:"unit"`
}

// ExpiryTerm is one dated entry on a customer's expiry account.
type ExpiryTerm struct {
	EndDate time.Time       `json:"end_date"`
	Period  decimal.Decimal `json:"period"`
	Unit    string          `json:"unit"`
}

// ExpiryAccount links one customer's product to an account name and its
// expiry end dates. Read-only to the engine.
type ExpiryAccount struct {
	AccountID   int          `json:"account_id"`
	AccountName string       `json:"account_name"`
	ProductID   int          `json:"product_id"`
	Expiries    []ExpiryTerm `json:"expiries"`
}

// LineState is the complete per-product auxiliary state of one cart line.
// One record per selected product replaces the legacy pattern of seven
// parallel keyed maps, so add/remove/replace touch a single structure.
type LineState struct {
	ProductID         int              `json:"product_id"`
	UnitID            int              `json:"unit_id"`
	Quantity          decimal.Decimal  `json:"quantity"`
	PriceOverride     *decimal.Decimal `json:"price_override"`
	Discount          decimal.Decimal  `json:"discount"`
	Note              string           `json:"note"`
	GiveawayQuantity  decimal.Decimal  `json:"giveaway_quantity"`
	SelectedTaxIDs    []int            `json:"selected_tax_ids"`
	ApplyWarranty     bool             `json:"apply_warranty"`
	ApplyExpiry       bool             `json:"apply_expiry"`
	ExpiryAccountID   int              `json:"expiry_account_id"`
	ExpiryAccountName string           `json:"expiry_account_name"`
	ExpiryStartDate   *time.Time       `json:"expiry_start_date"`
	ExpiryDuration    ExpiryDuration   `json:"expiry_duration"`
	IncludeInContract bool             `json:"include_in_contract"`
}

// Party is the order counterpart (customer for invoices, supplier for
// purchase orders) as far as validation needs to see it.
type Party struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	IdentityID string `json:"identity_id"`
}
