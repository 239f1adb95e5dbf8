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

type PurchaseOrder struct {
	ID                   int                   `gorm:"primary_key" json:"id"`
	BusinessId           string                `gorm:"index;not null" json:"business_id"`
	SupplierId           int                   `gorm:"index;not null" json:"supplier_id"`
	OrderNumber          string                `gorm:"size:255;not null" json:"order_number"`
	OrderDate            time.Time             `gorm:"not null" json:"order_date"`
	PaymentMethod        string                `gorm:"size:50;default:null" json:"payment_method"`
	ContractNumber       string                `gorm:"size:100;default:null" json:"contract_number"`
	IsPrintContract      *bool                 `gorm:"not null;default:false" json:"is_print_contract"`
	ExpectedDeliveryDate string                `gorm:"size:10;default:null" json:"expected_delivery_date"`
	SubTotal             decimal.Decimal       `gorm:"type:decimal(20,4);default:0" json:"sub_total"`
	TaxAmount            decimal.Decimal       `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	Discount             decimal.Decimal       `gorm:"type:decimal(20,4);default:0" json:"discount"`
	OtherExpenses        decimal.Decimal       `gorm:"type:decimal(20,4);default:0" json:"other_expenses"`
	TotalAmount          decimal.Decimal       `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	Details              []PurchaseOrderDetail `gorm:"foreignKey:PurchaseOrderId" json:"details"`
	CreatedAt            time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time             `gorm:"autoUpdateTime" json:"updated_at"`
}

type PurchaseOrderDetail struct {
	ID                int             `gorm:"primary_key" json:"id"`
	PurchaseOrderId   int             `gorm:"index;not null" json:"purchase_order_id"`
	ProductId         int             `gorm:"index;not null" json:"product_id"`
	UnitId            int             `gorm:"not null" json:"unit_id"`
	UnitName          string          `gorm:"size:50;not null" json:"unit_name"`
	Quantity          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
	BaseQuantity      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"base_quantity"`
	ConversionFactor  decimal.Decimal `gorm:"type:decimal(20,4);default:1" json:"conversion_factor"`
	Price             decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"price"`
	TaxAmount         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	SubTotal          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sub_total"`
	Discount          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount"`
	Total             decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total"`
	Note              string          `gorm:"type:text;default:null" json:"note"`
	Giveaway          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"giveaway"`
	IncludeInContract *bool           `gorm:"not null;default:false" json:"include_in_contract"`
	ApplyWarranty     *bool           `gorm:"not null;default:false" json:"apply_warranty"`
	Conditions        string          `gorm:"type:text;default:null" json:"conditions"`
	PeriodMonths      int             `gorm:"default:0" json:"period_months"`
	WarrantyCost      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"warranty_cost"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func mapPurchaseOrderDetails(sub cart.Submission) []PurchaseOrderDetail {
	details := make([]PurchaseOrderDetail, 0, len(sub.Items))
	for _, item := range sub.Items {
		details = append(details, PurchaseOrderDetail{
			ProductId:         item.ProductId,
			UnitId:            item.UnitId,
			UnitName:          item.UnitName,
			Quantity:          item.Quantity,
			BaseQuantity:      item.BaseQuantity,
			ConversionFactor:  item.ConversionFactor,
			Price:             item.Price,
			TaxAmount:         item.TaxAmount,
			SubTotal:          item.SubTotal,
			Discount:          item.Discount,
			Total:             item.Total,
			Note:              item.Note,
			Giveaway:          item.Giveaway,
			IncludeInContract: &item.IncludeInContract,
			ApplyWarranty:     &item.ApplyWarranty,
			Conditions:        item.Conditions,
			PeriodMonths:      item.PeriodMonths,
			WarrantyCost:      item.WarrantyCost,
		})
	}
	return details
}

// CreatePurchaseOrder persists a validated purchase submission with its
// details inside one transaction.
func CreatePurchaseOrder(ctx context.Context, sub cart.Submission) (*PurchaseOrder, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if sub.SupplierId <= 0 {
		return nil, errors.New("supplier is required")
	}
	if len(sub.Items) == 0 {
		return nil, errors.New("at least one item is required")
	}
	if _, err := GetSupplier(ctx, sub.SupplierId); err != nil {
		return nil, errors.New("supplier not found")
	}

	details := mapPurchaseOrderDetails(sub)

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	expectedDelivery := ""
	if sub.ExpectedDeliveryDate != nil {
		expectedDelivery = utils.MyDateString(*sub.ExpectedDeliveryDate)
	}

	order := PurchaseOrder{
		BusinessId:           businessId,
		SupplierId:           sub.SupplierId,
		OrderDate:            time.Now().UTC(),
		PaymentMethod:        sub.PaymentMethod,
		ContractNumber:       sub.ContractNumber,
		IsPrintContract:      &sub.IsPrintContract,
		ExpectedDeliveryDate: expectedDelivery,
		SubTotal:             sub.SubTotal,
		TaxAmount:            sub.TaxAmount,
		Discount:             sub.Discount,
		OtherExpenses:        sub.Amount,
		TotalAmount:          sub.TotalAmount,
		Details:              details,
	}
	if err := tx.Create(&order).Error; err != nil {
		return nil, err
	}

	order.OrderNumber = fmt.Sprintf("PO-%06d", order.ID)
	if err := tx.Model(&PurchaseOrder{}).Where("id = ?", order.ID).
		Update("order_number", order.OrderNumber).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdatePurchaseOrder replaces an existing order's details and totals with
// a re-submitted cart, for the purchase order edit screen.
func UpdatePurchaseOrder(ctx context.Context, id int, sub cart.Submission) (*PurchaseOrder, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}
	if len(sub.Items) == 0 {
		return nil, errors.New("at least one item is required")
	}

	db := config.GetDB()
	var order PurchaseOrder
	if err := db.WithContext(ctx).Where("business_id = ?", businessId).First(&order, id).Error; err != nil {
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

	if err := tx.Where("purchase_order_id = ?", order.ID).Delete(&PurchaseOrderDetail{}).Error; err != nil {
		return nil, err
	}

	details := mapPurchaseOrderDetails(sub)
	for i := range details {
		details[i].PurchaseOrderId = order.ID
	}
	if err := tx.Create(&details).Error; err != nil {
		return nil, err
	}

	expectedDelivery := ""
	if sub.ExpectedDeliveryDate != nil {
		expectedDelivery = utils.MyDateString(*sub.ExpectedDeliveryDate)
	}

	updates := map[string]interface{}{
		"payment_method":         sub.PaymentMethod,
		"contract_number":        sub.ContractNumber,
		"is_print_contract":      sub.IsPrintContract,
		"expected_delivery_date": expectedDelivery,
		"sub_total":              sub.SubTotal,
		"tax_amount":             sub.TaxAmount,
		"discount":               sub.Discount,
		"other_expenses":         sub.Amount,
		"total_amount":           sub.TotalAmount,
	}
	if sub.SupplierId > 0 {
		updates["supplier_id"] = sub.SupplierId
	}
	if err := tx.Model(&PurchaseOrder{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	order.Details = details
	return &order, nil
}

// GetPurchaseOrder loads one purchase order with details.
func GetPurchaseOrder(ctx context.Context, id int) (*PurchaseOrder, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	var order PurchaseOrder
	err := db.WithContext(ctx).
		Preload("Details").
		Where("business_id = ?", businessId).
		First(&order, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &order, nil
}
