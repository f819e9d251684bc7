package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/mmdatafocus/dashboard_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Expected spreadsheet column headers. Unknown columns are ignored.
const (
	ColProductName      = "Product Name"
	ColDate             = "Date"
	ColOpeningInventory = "Opening Inventory"
	ColProcurementQty   = "Procurement Qty"
	ColProcurementPrice = "Procurement Price"
	ColSalesQty         = "Sales Qty"
	ColSalesPrice       = "Sales Price"
)

// ImportRow is one validated spreadsheet row. Optional numeric fields default
// to zero; Date is normalized to UTC midnight.
type ImportRow struct {
	RowNumber        int
	ProductName      string
	Date             time.Time
	OpeningQty       decimal.Decimal
	ProcurementQty   decimal.Decimal
	ProcurementPrice decimal.Decimal
	SalesQty         decimal.Decimal
	SalesPrice       decimal.Decimal
}

// RowError reports one rejected row by its 1-based sheet position (the header
// is row 1, so data rows start at 2), with per-field messages.
type RowError struct {
	Row    int               `json:"row"`
	Errors map[string]string `json:"errors"`
}

// Cell values arrive as formatted strings from excelize, so dates can show up
// in whatever display format the sheet used, or as a raw serial number.
var importDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
	"01-02-06",
	"1/2/06 15:04",
}

func parseImportDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return toUTCDay(t), nil
		}
	}
	// Excel serial date fallback.
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return toUTCDay(t), nil
		}
	}
	return time.Time{}, &time.ParseError{Layout: "2006-01-02", Value: value}
}

func toUTCDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ValidateImportRow parses one raw row into an ImportRow or a RowError.
// A row whose product name is blank is neither: it returns (nil, nil) and is
// silently dropped, since such rows are almost always empty trailing rows.
// No side effects.
func ValidateImportRow(cells map[string]string, rowNumber int) (*ImportRow, *RowError) {
	name := strings.TrimSpace(cells[ColProductName])
	if name == "" {
		return nil, nil
	}

	fieldErrors := make(map[string]string)
	row := ImportRow{RowNumber: rowNumber, ProductName: name}

	date, err := parseImportDate(cells[ColDate])
	if err != nil {
		fieldErrors[ColDate] = "invalid date"
	} else {
		row.Date = date
	}

	row.OpeningQty = parseOptionalDecimal(cells[ColOpeningInventory], ColOpeningInventory, fieldErrors)
	row.ProcurementQty = parseOptionalDecimal(cells[ColProcurementQty], ColProcurementQty, fieldErrors)
	row.SalesQty = parseOptionalDecimal(cells[ColSalesQty], ColSalesQty, fieldErrors)
	row.ProcurementPrice = parseOptionalCurrency(cells[ColProcurementPrice], ColProcurementPrice, fieldErrors)
	row.SalesPrice = parseOptionalCurrency(cells[ColSalesPrice], ColSalesPrice, fieldErrors)

	if len(fieldErrors) > 0 {
		return nil, &RowError{Row: rowNumber, Errors: fieldErrors}
	}
	return &row, nil
}

func parseOptionalDecimal(value string, field string, fieldErrors map[string]string) decimal.Decimal {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero
	}
	d, err := utils.ParseDecimal(value)
	if err != nil {
		fieldErrors[field] = "invalid number"
		return decimal.Zero
	}
	return d
}

func parseOptionalCurrency(value string, field string, fieldErrors map[string]string) decimal.Decimal {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero
	}
	d, err := utils.ParseCurrencyDecimal(value)
	if err != nil {
		fieldErrors[field] = "invalid amount"
		return decimal.Zero
	}
	return d
}
