package models

import (
	"context"
	"errors"
	"time"

	"github.com/katecvn/katecvn-kim-dang-client-sub001/cart"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/config"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/utils"
	"github.com/shopspring/decimal"
)

// ExpiryAccount links one of a customer's products to a named account. The
// engine reads these to pre-fill expiry state when a customer is selected.
type ExpiryAccount struct {
	ID          int                  `gorm:"primary_key" json:"id"`
	BusinessId  string               `gorm:"index;not null" json:"business_id"`
	CustomerId  int                  `gorm:"index;not null" json:"customer_id"`
	ProductId   int                  `gorm:"index;not null" json:"product_id"`
	AccountName string               `gorm:"size:255;not null" json:"account_name"`
	Entries     []ExpiryAccountEntry `gorm:"foreignKey:ExpiryAccountId" json:"entries"`
	CreatedAt   time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
}

type ExpiryAccountEntry struct {
	ID              int             `gorm:"primary_key" json:"id"`
	ExpiryAccountId int             `gorm:"index;not null" json:"expiry_account_id"`
	EndDate         time.Time       `gorm:"not null" json:"end_date"`
	Period          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"period"`
	Unit            string          `gorm:"size:20;default:null" json:"unit"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// GetExpiryAccountsForCustomer loads a customer's expiry accounts in the
// engine's read-only shape.
func GetExpiryAccountsForCustomer(ctx context.Context, customerId int) ([]cart.ExpiryAccount, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	var accounts []*ExpiryAccount
	err := db.WithContext(ctx).
		Preload("Entries").
		Where("business_id = ? AND customer_id = ?", businessId, customerId).
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	results := make([]cart.ExpiryAccount, 0, len(accounts))
	for _, account := range accounts {
		terms := make([]cart.ExpiryTerm, 0, len(account.Entries))
		for _, entry := range account.Entries {
			terms = append(terms, cart.ExpiryTerm{
				EndDate: entry.EndDate,
				Period:  entry.Period,
				Unit:    entry.Unit,
			})
		}
		results = append(results, cart.ExpiryAccount{
			AccountID:   account.ID,
			AccountName: account.AccountName,
			ProductID:   account.ProductId,
			Expiries:    terms,
		})
	}
	return results, nil
}
