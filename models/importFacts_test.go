package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBuildFactWrites_FullRow(t *testing.T) {
	day := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	row := ImportRow{
		RowNumber:        2,
		ProductName:      "Shampoo",
		Date:             day,
		OpeningQty:       dec("10"),
		ProcurementQty:   dec("5"),
		ProcurementPrice: dec("3.5"),
		SalesQty:         dec("2"),
		SalesPrice:       dec("9"),
	}

	w := BuildFactWrites(row, 7)

	if len(w.Procurements) != 1 {
		t.Fatalf("expected 1 procurement, got %d", len(w.Procurements))
	}
	p := w.Procurements[0]
	if p.ProductId != 7 || !p.Date.Equal(day) || !p.Qty.Equal(dec("5")) || !p.UnitPrice.Equal(dec("3.5")) {
		t.Fatalf("unexpected procurement fact: %+v", p)
	}

	if len(w.Sales) != 1 {
		t.Fatalf("expected 1 sale, got %d", len(w.Sales))
	}
	s := w.Sales[0]
	if s.ProductId != 7 || !s.Qty.Equal(dec("2")) || !s.UnitPrice.Equal(dec("9")) {
		t.Fatalf("unexpected sale fact: %+v", s)
	}

	if len(w.Snapshots) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(w.Snapshots))
	}
	snap := w.Snapshots[0]
	if !snap.OpeningQty.Equal(dec("10")) {
		t.Fatalf("expected opening 10, got %s", snap.OpeningQty)
	}
	if !snap.ClosingQty.Equal(dec("13")) {
		t.Fatalf("expected closing 13 (10+5-2), got %s", snap.ClosingQty)
	}
}

// A fact needs both a positive qty and a positive price; the snapshot still
// uses the raw quantities.
func TestBuildFactWrites_WithholdsFactsOnMissingPrice(t *testing.T) {
	row := ImportRow{
		Date:           time.Date(2025, time.September, 2, 0, 0, 0, 0, time.UTC),
		OpeningQty:     dec("10"),
		ProcurementQty: dec("5"),
		SalesQty:       dec("2"),
	}

	w := BuildFactWrites(row, 1)

	if len(w.Procurements) != 0 {
		t.Fatalf("expected no procurement without a price, got %d", len(w.Procurements))
	}
	if len(w.Sales) != 0 {
		t.Fatalf("expected no sale without a price, got %d", len(w.Sales))
	}
	if len(w.Snapshots) != 1 {
		t.Fatalf("expected a snapshot regardless, got %d", len(w.Snapshots))
	}
	if !w.Snapshots[0].ClosingQty.Equal(dec("13")) {
		t.Fatalf("closing qty must use raw quantities: expected 13, got %s", w.Snapshots[0].ClosingQty)
	}
}

func TestBuildFactWrites_ZeroQuantities(t *testing.T) {
	row := ImportRow{
		Date:             time.Date(2025, time.September, 3, 0, 0, 0, 0, time.UTC),
		OpeningQty:       dec("4"),
		ProcurementPrice: dec("3.5"),
		SalesPrice:       dec("9"),
	}

	w := BuildFactWrites(row, 1)

	if len(w.Procurements) != 0 || len(w.Sales) != 0 {
		t.Fatal("expected no facts for zero quantities")
	}
	if !w.Snapshots[0].ClosingQty.Equal(dec("4")) {
		t.Fatalf("expected closing to equal opening, got %s", w.Snapshots[0].ClosingQty)
	}
}

func TestFactWritesMerge(t *testing.T) {
	var w FactWrites
	w.merge(FactWrites{Procurements: []Procurement{{ProductId: 1}}})
	w.merge(FactWrites{
		Sales:     []Sale{{ProductId: 2}},
		Snapshots: []InventorySnapshot{{ProductId: 1}, {ProductId: 2}},
	})
	if len(w.Procurements) != 1 || len(w.Sales) != 1 || len(w.Snapshots) != 2 {
		t.Fatalf("unexpected merged counts: %d/%d/%d", len(w.Procurements), len(w.Sales), len(w.Snapshots))
	}
}
