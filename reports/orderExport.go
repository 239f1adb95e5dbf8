package reports

import (
	"bytes"
	"fmt"

	"github.com/katecvn/katecvn-kim-dang-client-sub001/models"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/utils"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

var lineHeadings = []string{
	"Product", "Unit", "Quantity", "Base Quantity", "Price",
	"Sub Total", "Tax", "Discount", "Total", "Giveaway", "Note",
}

func writeHeadings(f *excelize.File, headings []string) {
	for i, h := range headings {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}
}

func writeRow(f *excelize.File, rowNo int, values []interface{}) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, rowNo)
		f.SetCellValue(sheetName, cell, v)
	}
}

// ExportSalesInvoice renders the invoice's lines and totals into a
// spreadsheet for download.
func ExportSalesInvoice(invoice *models.SalesInvoice) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, "", err
	}

	writeHeadings(f, lineHeadings)
	rowNo := 2
	for _, d := range invoice.Details {
		writeRow(f, rowNo, []interface{}{
			fmt.Sprintf("#%d", d.ProductId),
			d.UnitName,
			d.Quantity.InexactFloat64(),
			d.BaseQuantity.InexactFloat64(),
			d.Price.InexactFloat64(),
			d.SubTotal.InexactFloat64(),
			d.TaxAmount.InexactFloat64(),
			d.Discount.InexactFloat64(),
			d.Total.InexactFloat64(),
			d.Giveaway.InexactFloat64(),
			d.Note,
		})
		rowNo++
	}

	rowNo++
	writeRow(f, rowNo, []interface{}{"Sub Total", invoice.SubTotal.InexactFloat64()})
	writeRow(f, rowNo+1, []interface{}{"Tax", invoice.TaxAmount.InexactFloat64()})
	writeRow(f, rowNo+2, []interface{}{"Discount", invoice.Discount.InexactFloat64()})
	writeRow(f, rowNo+3, []interface{}{"Other Expenses", invoice.OtherExpenses.InexactFloat64()})
	writeRow(f, rowNo+4, []interface{}{"Total", invoice.TotalAmount.InexactFloat64()})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("%s-%s.xlsx", invoice.InvoiceNumber, utils.MyDateString(invoice.InvoiceDate))
	return buf, filename, nil
}

// ExportPurchaseOrder renders the purchase order's lines and totals into a
// spreadsheet for download.
func ExportPurchaseOrder(order *models.PurchaseOrder) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, "", err
	}

	headings := append(append([]string(nil), lineHeadings...), "In Contract")
	writeHeadings(f, headings)
	rowNo := 2
	for _, d := range order.Details {
		writeRow(f, rowNo, []interface{}{
			fmt.Sprintf("#%d", d.ProductId),
			d.UnitName,
			d.Quantity.InexactFloat64(),
			d.BaseQuantity.InexactFloat64(),
			d.Price.InexactFloat64(),
			d.SubTotal.InexactFloat64(),
			d.TaxAmount.InexactFloat64(),
			d.Discount.InexactFloat64(),
			d.Total.InexactFloat64(),
			d.Giveaway.InexactFloat64(),
			d.Note,
			utils.DereferencePtr(d.IncludeInContract),
		})
		rowNo++
	}

	rowNo++
	writeRow(f, rowNo, []interface{}{"Sub Total", order.SubTotal.InexactFloat64()})
	writeRow(f, rowNo+1, []interface{}{"Tax", order.TaxAmount.InexactFloat64()})
	writeRow(f, rowNo+2, []interface{}{"Discount", order.Discount.InexactFloat64()})
	writeRow(f, rowNo+3, []interface{}{"Other Expenses", order.OtherExpenses.InexactFloat64()})
	writeRow(f, rowNo+4, []interface{}{"Total", order.TotalAmount.InexactFloat64()})
	if order.ContractNumber != "" {
		writeRow(f, rowNo+5, []interface{}{"Contract", order.ContractNumber})
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("%s-%s.xlsx", order.OrderNumber, utils.MyDateString(order.OrderDate))
	return buf, filename, nil
}
