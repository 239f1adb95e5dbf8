package models

import (
	"context"
	"errors"
	"time"

	"github.com/katecvn/katecvn-kim-dang-client-sub001/config"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/utils"
	"github.com/shopspring/decimal"
)

type Tax struct {
	ID         int             `gorm:"primary_key" json:"id"`
	BusinessId string          `gorm:"index;not null" json:"business_id"`
	Name       string          `gorm:"size:100;not null" json:"name" binding:"required"`
	Rate       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"rate" binding:"required"`
	IsActive   *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// GetTaxRates returns the business's tax percentages keyed by tax id, for
// resolving a product's declared tax ids into rates.
func GetTaxRates(ctx context.Context) (map[int]decimal.Decimal, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	var taxes []*Tax
	err := db.WithContext(ctx).
		Where("business_id = ? AND is_active = true", businessId).
		Find(&taxes).Error
	if err != nil {
		return nil, err
	}

	rates := make(map[int]decimal.Decimal, len(taxes))
	for _, tax := range taxes {
		rates[tax.ID] = tax.Rate
	}
	return rates, nil
}
