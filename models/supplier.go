package models

import (
	"context"
	"errors"
	"time"

	"github.com/katecvn/katecvn-kim-dang-client-sub001/cart"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/config"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/utils"
)

type Supplier struct {
	ID         int       `gorm:"primary_key" json:"id"`
	BusinessId string    `gorm:"index;not null" json:"business_id"`
	Name       string    `gorm:"size:255;not null" json:"name" binding:"required"`
	Phone      string    `gorm:"size:20;default:null" json:"phone"`
	Email      string    `gorm:"size:255;default:null" json:"email"`
	TaxNumber  string    `gorm:"size:20;default:null" json:"tax_number"`
	Address    string    `gorm:"size:255;default:null" json:"address"`
	IsActive   *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func GetSupplier(ctx context.Context, id int) (*Supplier, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	var supplier Supplier
	err := db.WithContext(ctx).
		Where("business_id = ?", businessId).
		First(&supplier, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &supplier, nil
}

// ToParty maps the supplier into the engine's counterpart shape.
func (s *Supplier) ToParty() cart.Party {
	return cart.Party{
		ID:         s.ID,
		Name:       s.Name,
		Phone:      s.Phone,
		IdentityID: s.TaxNumber,
	}
}
