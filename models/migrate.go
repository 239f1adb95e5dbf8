package models

import (
	"github.com/katecvn/katecvn-kim-dang-client-sub001/config"
)

func MigrateTable() error {
	db := config.GetDB()
	return db.AutoMigrate(
		&User{},
		&Customer{},
		&Supplier{},
		&Tax{},
		&Product{},
		&ProductUnitConversion{},
		&ProductTaxRate{},
		&ExpiryAccount{},
		&ExpiryAccountEntry{},
		&SalesInvoice{},
		&SalesInvoiceDetail{},
		&PurchaseOrder{},
		&PurchaseOrderDetail{},
	)
}
