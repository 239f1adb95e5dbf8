package cart

import (
	"time"

	"github.com/katecvn/katecvn-kim-dang-client-sub001/utils"
	"github.com/shopspring/decimal"
)

// SubmissionItem is one cart line in the shape the persistence layer
// accepts. The same shape serves both invoice and purchase-order paths.
type SubmissionItem struct {
	ProductId         int             `json:"product_id"`
	UnitId            int             `json:"unit_id"`
	UnitName          string          `json:"unit_name"`
	Quantity          decimal.Decimal `json:"quantity"`
	BaseQuantity      decimal.Decimal `json:"base_quantity"`
	ConversionFactor  decimal.Decimal `json:"conversion_factor"`
	Price             decimal.Decimal `json:"price"`
	TaxAmount         decimal.Decimal `json:"tax_amount"`
	SubTotal          decimal.Decimal `json:"sub_total"`
	Discount          decimal.Decimal `json:"discount"`
	Total             decimal.Decimal `json:"total"`
	Note              string          `json:"note"`
	Giveaway          decimal.Decimal `json:"giveaway"`
	AccountId         int             `json:"account_id"`
	AccountName       string          `json:"account_name"`
	StartDate         string          `json:"start_date"`
	ApplyExpiry       bool            `json:"apply_expiry"`
	ExpiryDuration    decimal.Decimal `json:"expiry_duration"`
	ExpiryUnit        string          `json:"expiry_unit"`
	ApplyWarranty     bool            `json:"apply_warranty"`
	Conditions        string          `json:"conditions"`
	PeriodMonths      int             `json:"period_months"`
	WarrantyCost      decimal.Decimal `json:"warranty_cost"`
	IncludeInContract bool            `json:"include_in_contract"`
}

// Submission is the complete payload handed to the persistence layer once.
// "amount" carries the flat other-expenses figure so that
// total_amount == sub_total + tax_amount + amount holds.
type Submission struct {
	Kind                 OrderKind        `json:"kind"`
	CustomerId           int              `json:"customer_id"`
	SupplierId           int              `json:"supplier_id"`
	PaymentMethod        string           `json:"payment_method"`
	Items                []SubmissionItem `json:"items"`
	SubTotal             decimal.Decimal  `json:"sub_total"`
	TaxAmount            decimal.Decimal  `json:"tax_amount"`
	Discount             decimal.Decimal  `json:"discount"`
	Amount               decimal.Decimal  `json:"amount"`
	TotalAmount          decimal.Decimal  `json:"total_amount"`
	ContractNumber       string           `json:"contract_number"`
	IsPrintContract      bool             `json:"is_print_contract"`
	ExpectedDeliveryDate *time.Time       `json:"expected_delivery_date"`
}

// BuildSubmission materializes the current cart into the submission payload.
// The session itself is left untouched so a failed network submit can be
// retried without re-entering line data.
func (s *Session) BuildSubmission() Submission {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.linesLocked()
	totals := AggregateTotals(lines, s.OtherExpenses)

	items := make([]SubmissionItem, 0, len(lines))
	for _, amounts := range lines {
		line := s.lines[amounts.ProductID]

		startDate := ""
		if line.ExpiryStartDate != nil && !line.ExpiryStartDate.IsZero() {
			startDate = utils.MyDateString(*line.ExpiryStartDate)
		}

		items = append(items, SubmissionItem{
			ProductId:         amounts.ProductID,
			UnitId:            amounts.UnitID,
			UnitName:          amounts.UnitName,
			Quantity:          amounts.Quantity,
			BaseQuantity:      amounts.BaseQuantity,
			ConversionFactor:  amounts.ConversionFactor,
			Price:             amounts.Price,
			TaxAmount:         amounts.TaxAmount,
			SubTotal:          amounts.SubTotal,
			Discount:          amounts.Discount,
			Total:             amounts.Total,
			Note:              amounts.Note,
			Giveaway:          amounts.Giveaway,
			AccountId:         line.ExpiryAccountID,
			AccountName:       line.ExpiryAccountName,
			StartDate:         startDate,
			ApplyExpiry:       line.ApplyExpiry,
			ExpiryDuration:    line.ExpiryDuration.Value,
			ExpiryUnit:        line.ExpiryDuration.Unit,
			ApplyWarranty:     line.ApplyWarranty,
			Conditions:        utils.DereferencePtr(amounts.Conditions),
			PeriodMonths:      utils.DereferencePtr(amounts.PeriodMonths),
			WarrantyCost:      utils.DereferencePtr(amounts.WarrantyCost, decimal.Zero),
			IncludeInContract: line.IncludeInContract,
		})
	}

	submission := Submission{
		Kind:          s.Kind,
		PaymentMethod: s.PaymentMethod,
		Items:         items,
		SubTotal:      totals.SubTotal,
		TaxAmount:     totals.TaxAmount,
		Discount:      totals.Discount,
		Amount:        totals.OtherExpenses,
		TotalAmount:   totals.GrandTotal,
	}
	if s.customer != nil {
		submission.CustomerId = s.customer.ID
	}
	if s.supplier != nil {
		submission.SupplierId = s.supplier.ID
	}
	if s.Kind == KindPurchaseOrder {
		submission.ContractNumber = s.ContractNumber
		submission.IsPrintContract = s.IsPrintContract
		submission.ExpectedDeliveryDate = s.ExpectedDeliveryDate
	}
	return submission
}
