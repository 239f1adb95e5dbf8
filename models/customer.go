package models

import (
	"context"
	"errors"
	"time"

	"github.com/katecvn/katecvn-kim-dang-client-sub001/cart"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/config"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/utils"
)

type Customer struct {
	ID             int       `gorm:"primary_key" json:"id"`
	BusinessId     string    `gorm:"index;not null" json:"business_id"`
	Name           string    `gorm:"size:255;not null" json:"name" binding:"required"`
	Phone          string    `gorm:"size:20;default:null" json:"phone"`
	Email          string    `gorm:"size:255;default:null" json:"email"`
	IdentityNumber string    `gorm:"size:20;default:null" json:"identity_number"`
	Address        string    `gorm:"size:255;default:null" json:"address"`
	IsActive       *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCustomer struct {
	Name           string `json:"name" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Email          string `json:"email"`
	IdentityNumber string `json:"identity_number" binding:"required"`
	Address        string `json:"address"`
}

func GetCustomer(ctx context.Context, id int) (*Customer, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	db := config.GetDB()
	var customer Customer
	err := db.WithContext(ctx).
		Where("business_id = ?", businessId).
		First(&customer, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &customer, nil
}

// CreateCustomer creates a customer entered inline from an order screen.
// Contact fields go through the same checks the submit gate applies.
func CreateCustomer(ctx context.Context, input *NewCustomer) (*Customer, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	if err := cart.ValidateCustomerContact(input.Name, input.Phone, input.IdentityNumber, input.Email); err != nil {
		return nil, err
	}
	if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
		return nil, errors.New("phone number is not valid")
	}

	customer := Customer{
		BusinessId:     businessId,
		Name:           input.Name,
		Phone:          input.Phone,
		Email:          input.Email,
		IdentityNumber: input.IdentityNumber,
		Address:        input.Address,
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Create(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// ToParty maps the customer into the engine's counterpart shape.
func (c *Customer) ToParty() cart.Party {
	return cart.Party{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		IdentityID: c.IdentityNumber,
	}
}
