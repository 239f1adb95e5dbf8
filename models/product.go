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

type Product struct {
	ID           int             `gorm:"primary_key" json:"id"`
	BusinessId   string          `gorm:"index;not null" json:"business_id"`
	Name         string          `gorm:"size:255;not null" json:"name" binding:"required"`
	Sku          string          `gorm:"size:100;default:null" json:"sku"`
	BasePrice    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"base_price"`
	BaseUnitId   int             `gorm:"not null" json:"base_unit_id"`
	BaseUnitName string          `gorm:"size:50;not null" json:"base_unit_name"`
	HasExpiry    *bool           `gorm:"not null;default:false" json:"has_expiry"`
	HasWarranty  *bool           `gorm:"not null;default:false" json:"has_warranty"`
	// Warranty policy columns; meaningful only when HasWarranty is true.
	WarrantyPeriodMonths int                     `gorm:"default:0" json:"warranty_period_months"`
	WarrantyConditions   string                  `gorm:"type:text;default:null" json:"warranty_conditions"`
	WarrantyCost         decimal.Decimal         `gorm:"type:decimal(20,4);default:0" json:"warranty_cost"`
	IsActive             *bool                   `gorm:"not null;default:true" json:"is_active"`
	Conversions          []ProductUnitConversion `gorm:"foreignKey:ProductId" json:"conversions"`
	TaxRates             []ProductTaxRate        `gorm:"foreignKey:ProductId" json:"tax_rates"`
	CreatedAt            time.Time               `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time               `gorm:"autoUpdateTime" json:"updated_at"`
}

// ProductUnitConversion declares 1 base unit == ConversionFactor × unit.
type ProductUnitConversion struct {
	ID               int             `gorm:"primary_key" json:"id"`
	ProductId        int             `gorm:"index;not null" json:"product_id"`
	UnitId           int             `gorm:"not null" json:"unit_id"`
	UnitName         string          `gorm:"size:50;not null" json:"unit_name"`
	ConversionFactor decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"conversion_factor"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// ProductTaxRate is one tax available at the product's price tier.
type ProductTaxRate struct {
	ID        int       `gorm:"primary_key" json:"id"`
	ProductId int       `gorm:"index;not null" json:"product_id"`
	TaxId     int       `gorm:"index;not null" json:"tax_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

const productCacheTTL = 10 * time.Minute

func productCacheKey(businessId string, id int) string {
	return "Product:" + businessId + ":" + utils.IntKey(id)
}

// GetProduct loads a product with its conversions and taxes, redis-cached.
func GetProduct(ctx context.Context, id int) (*Product, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	var product Product
	exists, err := config.GetRedisObject(productCacheKey(businessId, id), &product)
	if err == nil && exists {
		return &product, nil
	}

	db := config.GetDB()
	err = db.WithContext(ctx).
		Preload("Conversions").
		Preload("TaxRates").
		Where("business_id = ?", businessId).
		First(&product, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	_ = config.SetRedisObject(productCacheKey(businessId, id), &product, productCacheTTL)
	return &product, nil
}

// GetProducts loads several products at once for bulk selection.
func GetProducts(ctx context.Context, ids []int) ([]*Product, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, errors.New("business id is required")
	}

	unqIds := utils.UniqueSlice(ids)
	db := config.GetDB()
	var products []*Product
	err := db.WithContext(ctx).
		Preload("Conversions").
		Preload("TaxRates").
		Where("business_id = ? AND id IN ?", businessId, unqIds).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	if len(products) != len(unqIds) {
		return nil, utils.ErrorRecordNotFound
	}
	return products, nil
}

// UpdateProductBasePrice persists a pushed price change and drops the cache
// entry so the next fetch sees the new price.
func UpdateProductBasePrice(ctx context.Context, businessId string, id int, newPrice decimal.Decimal) error {
	db := config.GetDB()
	result := db.WithContext(ctx).Model(&Product{}).
		Where("business_id = ? AND id = ?", businessId, id).
		Update("base_price", newPrice)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return config.RemoveRedisKey(productCacheKey(businessId, id))
}

// ToCartProduct maps the catalog record into the engine's snapshot shape.
func (p *Product) ToCartProduct(taxes map[int]decimal.Decimal) cart.Product {
	conversions := make([]cart.UnitConversion, 0, len(p.Conversions))
	for _, conv := range p.Conversions {
		conversions = append(conversions, cart.UnitConversion{
			UnitID:   conv.UnitId,
			UnitName: conv.UnitName,
			Factor:   conv.ConversionFactor,
		})
	}

	taxRates := make([]cart.TaxRate, 0, len(p.TaxRates))
	for _, rate := range p.TaxRates {
		if pct, ok := taxes[rate.TaxId]; ok {
			taxRates = append(taxRates, cart.TaxRate{TaxID: rate.TaxId, Percentage: pct})
		}
	}

	snapshot := cart.Product{
		ID:           p.ID,
		Name:         p.Name,
		BasePrice:    p.BasePrice,
		BaseUnitID:   p.BaseUnitId,
		BaseUnitName: p.BaseUnitName,
		Conversions:  conversions,
		TaxRates:     taxRates,
		HasExpiry:    utils.DereferencePtr(p.HasExpiry),
	}
	if utils.DereferencePtr(p.HasWarranty) {
		snapshot.Warranty = &cart.WarrantyPolicy{
			PeriodMonths: p.WarrantyPeriodMonths,
			Conditions:   p.WarrantyConditions,
			Cost:         p.WarrantyCost,
		}
	}
	return snapshot
}
