package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katecvn/katecvn-kim-dang-client-sub001/cart"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/config"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/utils"
	"github.com/shopspring/decimal"
)

type SalesInvoice struct {
	ID            int                  `gorm:"primary_key" json:"id"`
	BusinessId    string               `gorm:"index;not null" json:"business_id"`
	CustomerId    int                  `gorm:"index;not null" json:"customer_id"`
	InvoiceNumber string               `gorm:"size:255;not null" json:"invoice_number"`
	InvoiceDate   time.Time            `gorm:"not null" json:"invoice_date"`
	PaymentMethod string               `gorm:"size:50;default:null" json:"payment_method"`
	SubTotal      decimal.Decimal      `gorm:"type:decimal(20,4);default:0" json:"sub_total"`
	TaxAmount     decimal.Decimal      `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	Discount      decimal.Decimal      `gorm:"type:decimal(20,4);default:0" json:"discount"`
	OtherExpenses decimal.Decimal      `gorm:"type:decimal(20,4);default:0" json:"other_expenses"`
	TotalAmount   decimal.Decimal      `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	Details       []SalesInvoiceDetail `gorm:"foreignKey:SalesInvoiceId" json:"details"`
	CreatedAt     time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
}

type SalesInvoiceDetail struct {
	ID               int             `gorm:"primary_key" json:"id"`
	SalesInvoiceId   int             `gorm:"index;not null" json:"sales_invoice_id"`
	ProductId        int             `gorm:"index;not null" json:"product_id"`
	UnitId           int             `gorm:"not null" json:"unit_id"`
	UnitName         string          `gorm:"size:50;not null" json:"unit_name"`
	Quantity         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
	BaseQuantity     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"base_quantity"`
	ConversionFactor decimal.Decimal `gorm:"type:decimal(20,4);default:1" json:"conversion_factor"`
	Price            decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"price"`
	TaxAmount        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	SubTotal         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sub_total"`
	Discount         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount"`
	Total            decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total"`
	Note             string          `gorm:"type:text;default:null" json:"note"`
	Giveaway         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"giveaway"`
	AccountId        int             `gorm:"default:null" json:"account_id"`
	AccountName      string          `gorm:"size:255;default:null" json:"account_name"`
	StartDate        string          `gorm:"size:10;default:null" json:"start_date"`
	ApplyExpiry      *bool           `gorm:"not null;default:false" json:"apply_expiry"`
	ExpiryDuration   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"expiry_duration"`
	ExpiryUnit       string          `gorm:"size:20;default:null" json:"expiry_unit"`
	ApplyWarranty    *bool           `gorm:"not null;default:false" json:"apply_warranty"`
	Conditions       string          `gorm:"type:text;default:null" json:"conditions"`
	PeriodMonths     int             `gorm:"default:0" json:"period_months"`
	WarrantyCost     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"warranty_cost"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func mapSubmissionDetails(sub cart.Submission) []SalesInvoiceDetail {
	details := make([]SalesInvoiceDetail, 0, len(sub.Items))
	for _, item := range sub.Items {
		details = append(details, SalesInvoiceDetail{
			ProductId:        item.ProductId,
			UnitId:           item.UnitId,
			UnitName:         item.UnitName,
			Quantity:         item.Quantity,
			BaseQuantity:     item.BaseQuantity,
			ConversionFactor: item.ConversionFactor,
			Price:            item.Price,
			TaxAmount:        item.TaxAmount,
			SubTotal:         item.SubTotal,
			Discount:         item.Discount,
			Total:            item.Total,
			Note:             item.Note,
			Giveaway:         item.Giveaway,
			AccountId:        item.AccountId,
			AccountName:      item.AccountName,
			StartDate:        item.StartDate,
			ApplyExpiry:      &item.ApplyExpiry,
			ExpiryDuration:   item.ExpiryDuration,
			ExpiryUnit:       item.ExpiryUnit,
			ApplyWarranty:    &item.ApplyWarranty,
			Conditions:       item.Conditions,
			PeriodMonths:     item.PeriodMonths,
			WarrantyCost:     item.WarrantyCost,
		})
	}
	return details
}

// CreateSalesInvoice persists a validated submission as an invoice with its
// details inside one transaction.
func CreateSalesInvoice(ctx context.Context, sub cart.Submission) (*SalesInvoice, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if sub.CustomerId <= 0 {
		return nil, errors.New("customer is required")
	}
	if len(sub.Items) == 0 {
		return nil, errors.New("at least one item is required")
	}
	if _, err := GetCustomer(ctx, sub.CustomerId); err != nil {
		return nil, errors.New("customer not found")
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	// Always rollback on early-return or panic to avoid leaking DB locks.
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	invoice := SalesInvoice{
		BusinessId:    businessId,
		CustomerId:    sub.CustomerId,
		InvoiceDate:   time.Now().UTC(),
		PaymentMethod: sub.PaymentMethod,
		SubTotal:      sub.SubTotal,
		TaxAmount:     sub.TaxAmount,
		Discount:      sub.Discount,
		OtherExpenses: sub.Amount,
		TotalAmount:   sub.TotalAmount,
		Details:       mapSubmissionDetails(sub),
	}
	if err := tx.Create(&invoice).Error; err != nil {
		return nil, err
	}

	invoice.InvoiceNumber = fmt.Sprintf("INV-%06d", invoice.ID)
	if err := tx.Model(&SalesInvoice{}).Where("id = ?", invoice.ID).
		Update("invoice_number", invoice.InvoiceNumber).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// UpdateSalesInvoice replaces an existing invoice's details and totals with
// a re-submitted cart, for the invoice edit screen.
func UpdateSalesInvoice(ctx context.Context, id int, sub cart.Submission) (*SalesInvoice, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if len(sub.Items) == 0 {
		return nil, errors.New("at least one item is required")
	}

	db := config.GetDB()
	var invoice SalesInvoice
	if err := db.WithContext(ctx).Where("business_id = ?", businessId).First(&invoice, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	tx := db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.Where("sales_invoice_id = ?", invoice.ID).Delete(&SalesInvoiceDetail{}).Error; err != nil {
		return nil, err
	}

	details := mapSubmissionDetails(sub)
	for i := range details {
		details[i].SalesInvoiceId = invoice.ID
	}
	if err := tx.Create(&details).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"payment_method": sub.PaymentMethod,
		"sub_total":      sub.SubTotal,
		"tax_amount":     sub.TaxAmount,
		"discount":       sub.Discount,
		"other_expenses": sub.Amount,
		"total_amount":   sub.TotalAmount,
	}
	if sub.CustomerId > 0 {
		updates["customer_id"] = sub.CustomerId
	}
	if err := tx.Model(&SalesInvoice{}).Where("id = ?", invoice.ID).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	invoice.Details = details
	return &invoice, nil
}

// GetSalesInvoice loads one invoice with details.
func GetSalesInvoice(ctx context.Context, id int) (*SalesInvoice, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	var invoice SalesInvoice
	err := db.WithContext(ctx).
		Preload("Details").
		Where("business_id = ?", businessId).
		First(&invoice, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &invoice, nil
}
