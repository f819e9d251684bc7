package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func row(overrides map[string]string) map[string]string {
	cells := map[string]string{
		ColProductName:      "Shampoo",
		ColDate:             "2025-09-01",
		ColOpeningInventory: "10",
		ColProcurementQty:   "5",
		ColProcurementPrice: "3.50",
		ColSalesQty:         "2",
		ColSalesPrice:       "9.00",
	}
	for k, v := range overrides {
		cells[k] = v
	}
	return cells
}

func TestValidateImportRow_Valid(t *testing.T) {
	validated, rowErr := ValidateImportRow(row(nil), 2)
	if rowErr != nil {
		t.Fatalf("unexpected row error: %+v", rowErr)
	}
	if validated == nil {
		t.Fatal("expected a validated row")
	}
	if validated.ProductName != "Shampoo" {
		t.Fatalf("expected Shampoo, got %q", validated.ProductName)
	}
	expectedDate := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	if !validated.Date.Equal(expectedDate) {
		t.Fatalf("expected %v, got %v", expectedDate, validated.Date)
	}
	if !validated.ProcurementPrice.Equal(decimal.RequireFromString("3.5")) {
		t.Fatalf("expected procurement price 3.5, got %s", validated.ProcurementPrice)
	}
}

// Blank product names mark empty trailing rows: excluded from both validated
// records and the error list.
func TestValidateImportRow_BlankNameSkipsSilently(t *testing.T) {
	for _, name := range []string{"", "   ", "\t"} {
		validated, rowErr := ValidateImportRow(row(map[string]string{ColProductName: name}), 5)
		if validated != nil || rowErr != nil {
			t.Fatalf("expected silent skip for name %q, got row=%+v err=%+v", name, validated, rowErr)
		}
	}
}

func TestValidateImportRow_BadDate(t *testing.T) {
	validated, rowErr := ValidateImportRow(row(map[string]string{ColDate: "not-a-date"}), 3)
	if validated != nil {
		t.Fatal("expected rejection for unparseable date")
	}
	if rowErr == nil || rowErr.Row != 3 {
		t.Fatalf("expected row error at position 3, got %+v", rowErr)
	}
	if _, ok := rowErr.Errors[ColDate]; !ok {
		t.Fatalf("expected a Date field error, got %+v", rowErr.Errors)
	}
}

func TestValidateImportRow_DateLayouts(t *testing.T) {
	expected := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2025-09-01", "2025/09/01", "09/01/2025", "09-01-25"} {
		validated, rowErr := ValidateImportRow(row(map[string]string{ColDate: in}), 2)
		if rowErr != nil || validated == nil {
			t.Fatalf("date %q unexpectedly rejected: %+v", in, rowErr)
		}
		if !validated.Date.Equal(expected) {
			t.Fatalf("date %q expected %v, got %v", in, expected, validated.Date)
		}
	}
}

func TestValidateImportRow_EmptyNumericFieldsDefaultToZero(t *testing.T) {
	validated, rowErr := ValidateImportRow(row(map[string]string{
		ColOpeningInventory: "",
		ColProcurementQty:   "",
		ColProcurementPrice: "",
		ColSalesQty:         "",
		ColSalesPrice:       "",
	}), 2)
	if rowErr != nil || validated == nil {
		t.Fatalf("expected valid row, got err=%+v", rowErr)
	}
	for field, got := range map[string]decimal.Decimal{
		"opening":           validated.OpeningQty,
		"procurement qty":   validated.ProcurementQty,
		"procurement price": validated.ProcurementPrice,
		"sales qty":         validated.SalesQty,
		"sales price":       validated.SalesPrice,
	} {
		if !got.IsZero() {
			t.Fatalf("expected %s to default to 0, got %s", field, got)
		}
	}
}

func TestValidateImportRow_CurrencyDecoration(t *testing.T) {
	validated, rowErr := ValidateImportRow(row(map[string]string{
		ColProcurementPrice: "MMK 3,500",
		ColSalesPrice:       "$9.00",
	}), 2)
	if rowErr != nil || validated == nil {
		t.Fatalf("expected valid row, got err=%+v", rowErr)
	}
	if !validated.ProcurementPrice.Equal(decimal.RequireFromString("3500")) {
		t.Fatalf("expected 3500, got %s", validated.ProcurementPrice)
	}
	if !validated.SalesPrice.Equal(decimal.RequireFromString("9")) {
		t.Fatalf("expected 9, got %s", validated.SalesPrice)
	}
}

func TestValidateImportRow_BadNumberReported(t *testing.T) {
	validated, rowErr := ValidateImportRow(row(map[string]string{ColSalesQty: "two"}), 7)
	if validated != nil {
		t.Fatal("expected rejection for malformed quantity")
	}
	if rowErr == nil || rowErr.Errors[ColSalesQty] == "" {
		t.Fatalf("expected a Sales Qty field error, got %+v", rowErr)
	}
}
