// seed-demo loads a small demo dataset: a user with a login token, a
// customer with an expiry account, a supplier, taxes and a few products
// with unit conversions.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-demo
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/katecvn/katecvn-kim-dang-client-sub001/config"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/models"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	demoBusinessId = "demo-business"
	demoUsername   = "demo"
	demoToken      = "demo-token"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	if err := models.MigrateTable(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to migrate: %v\n", err)
		os.Exit(1)
	}

	var existing models.User
	err := db.WithContext(ctx).Where("username = ?", demoUsername).First(&existing).Error
	if err == nil {
		fmt.Println("demo data already seeded; refreshing login token only")
		seedToken()
		return
	}
	if err != gorm.ErrRecordNotFound {
		fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
		os.Exit(1)
	}

	user := models.User{
		BusinessId: demoBusinessId,
		Username:   demoUsername,
		Name:       "Demo User",
		IsActive:   utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to create user: %v\n", err)
		os.Exit(1)
	}

	vat := models.Tax{BusinessId: demoBusinessId, Name: "VAT 10%", Rate: decimal.NewFromInt(10), IsActive: utils.NewTrue()}
	env := models.Tax{BusinessId: demoBusinessId, Name: "Env 2%", Rate: decimal.NewFromInt(2), IsActive: utils.NewTrue()}
	for _, tax := range []*models.Tax{&vat, &env} {
		if err := db.WithContext(ctx).Create(tax).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create tax: %v\n", err)
			os.Exit(1)
		}
	}

	rice := models.Product{
		BusinessId:   demoBusinessId,
		Name:         "Rice 50kg",
		Sku:          "RICE-50",
		BasePrice:    decimal.NewFromInt(100000),
		BaseUnitId:   1,
		BaseUnitName: "bag",
		IsActive:     utils.NewTrue(),
		HasExpiry:    utils.NewFalse(),
		HasWarranty:  utils.NewFalse(),
		Conversions: []models.ProductUnitConversion{
			{UnitId: 2, UnitName: "kg", ConversionFactor: decimal.NewFromInt(10)},
		},
		TaxRates: []models.ProductTaxRate{{TaxId: vat.ID}},
	}
	waterService := models.Product{
		BusinessId:           demoBusinessId,
		Name:                 "Water Service",
		Sku:                  "WTR-SVC",
		BasePrice:            decimal.NewFromInt(240000),
		BaseUnitId:           3,
		BaseUnitName:         "year",
		IsActive:             utils.NewTrue(),
		HasExpiry:            utils.NewTrue(),
		HasWarranty:          utils.NewTrue(),
		WarrantyPeriodMonths: 12,
		WarrantyConditions:   "covers manufacturing defects",
		WarrantyCost:         decimal.NewFromInt(20000),
		Conversions: []models.ProductUnitConversion{
			{UnitId: 4, UnitName: "month", ConversionFactor: decimal.NewFromInt(12)},
		},
		TaxRates: []models.ProductTaxRate{{TaxId: vat.ID}, {TaxId: env.ID}},
	}
	for _, product := range []*models.Product{&rice, &waterService} {
		if err := db.WithContext(ctx).Create(product).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create product: %v\n", err)
			os.Exit(1)
		}
	}

	customer := models.Customer{
		BusinessId:     demoBusinessId,
		Name:           "Nguyen Van A",
		Phone:          "0912345678",
		Email:          "a.nguyen@example.com",
		IdentityNumber: "012345678901",
		IsActive:       utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&customer).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to create customer: %v\n", err)
		os.Exit(1)
	}

	account := models.ExpiryAccount{
		BusinessId:  demoBusinessId,
		CustomerId:  customer.ID,
		ProductId:   waterService.ID,
		AccountName: "WTR-0001",
		Entries: []models.ExpiryAccountEntry{
			{EndDate: time.Now().UTC().AddDate(0, 3, 0), Period: decimal.NewFromInt(1), Unit: "year"},
		},
	}
	if err := db.WithContext(ctx).Create(&account).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to create expiry account: %v\n", err)
		os.Exit(1)
	}

	supplier := models.Supplier{
		BusinessId: demoBusinessId,
		Name:       "Cong Ty TNHH ABC",
		Phone:      "0987654321",
		TaxNumber:  "0312345678",
		IsActive:   utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&supplier).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to create supplier: %v\n", err)
		os.Exit(1)
	}

	seedToken()
	fmt.Printf("seeded demo data: user=%q customer=%d supplier=%d products=[%d %d]\n",
		demoUsername, customer.ID, supplier.ID, rice.ID, waterService.ID)
}

func seedToken() {
	if err := config.SetRedisValue("Token:"+demoToken, demoUsername, 30*24*time.Hour); err != nil {
		fmt.Fprintf(os.Stderr, "failed to store login token: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("login with header token: %s\n", demoToken)
}
