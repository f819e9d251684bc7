package reports

import (
	"reflect"
	"testing"
	"time"

	"github.com/mmdatafocus/dashboard_backend/models"
	"github.com/shopspring/decimal"
)

func day(d int) time.Time {
	return time.Date(2025, time.September, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateRange(t *testing.T) {
	cases := []struct {
		name     string
		from, to time.Time
		expected error
	}{
		{"single day", day(1), day(1), nil},
		{"seven days", day(1), day(7), nil},
		{"eight days", day(1), day(8), ErrRangeTooLarge},
		{"inverted", day(5), day(1), ErrInvalidRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateRange(tc.from, tc.to); err != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestDayStrings(t *testing.T) {
	got := dayStrings(day(1), day(3))
	expected := []string{"2025-09-01", "2025-09-02", "2025-09-03"}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}

	if got := dayStrings(day(4), day(4)); len(got) != 1 || got[0] != "2025-09-04" {
		t.Fatalf("expected single day, got %v", got)
	}
}

func TestParseMetrics(t *testing.T) {
	got := ParseMetrics([]string{"procurement", "revenue", "endInventory", ""})
	expected := []string{MetricProcurement, MetricEndInventory}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	if got := ParseMetrics([]string{"revenue"}); len(got) != 0 {
		t.Fatalf("expected all unknown metrics dropped, got %v", got)
	}
}

func TestAssembleSeries_ZeroFillAndOverlay(t *testing.T) {
	products := []models.Product{{ID: 1, Name: "Shampoo"}}
	days := dayStrings(day(1), day(3))
	set := metricSet{procurement: true, endInventory: true}

	procurements := []models.Procurement{{
		ProductId: 1,
		Date:      day(2),
		Qty:       decimal.RequireFromString("5"),
		UnitPrice: decimal.RequireFromString("3.5"),
	}}
	snapshots := []models.InventorySnapshot{{
		ProductId:  1,
		Date:       day(2),
		OpeningQty: decimal.RequireFromString("10"),
		ClosingQty: decimal.RequireFromString("13"),
	}}

	series := assembleSeries(products, days, set, procurements, nil, snapshots)

	if len(series) != 1 {
		t.Fatalf("expected 1 product series, got %d", len(series))
	}
	s := series[0]
	if s.ProductId != 1 || s.ProductName != "Shampoo" {
		t.Fatalf("unexpected series header: %+v", s)
	}
	if len(s.Data) != 3 {
		t.Fatalf("expected 3 day points, got %d", len(s.Data))
	}

	// Days without facts are present with explicit zeros.
	first := s.Data[0]
	if first.Date != "2025-09-01" {
		t.Fatalf("expected ascending days, got %s first", first.Date)
	}
	if first.ProcurementQty == nil || *first.ProcurementQty != 0 {
		t.Fatalf("expected zero-filled procurement qty, got %v", first.ProcurementQty)
	}
	if first.EndInventoryQty == nil || *first.EndInventoryQty != 0 {
		t.Fatalf("expected zero-filled end inventory, got %v", first.EndInventoryQty)
	}

	// Non-requested metric fields stay absent.
	if first.SalesQty != nil || first.SalesUnitPrice != nil {
		t.Fatal("expected sales fields to be nil when sales metric not requested")
	}

	second := s.Data[1]
	if second.ProcurementQty == nil || *second.ProcurementQty != 5 {
		t.Fatalf("expected overlaid procurement qty 5, got %v", second.ProcurementQty)
	}
	if second.ProcurementUnitPrice == nil || *second.ProcurementUnitPrice != 3.5 {
		t.Fatalf("expected overlaid unit price 3.5, got %v", second.ProcurementUnitPrice)
	}
	if second.EndInventoryQty == nil || *second.EndInventoryQty != 13 {
		t.Fatalf("expected overlaid end inventory 13, got %v", second.EndInventoryQty)
	}
}

func TestAssembleSeries_DropsRowsOutsideWindow(t *testing.T) {
	products := []models.Product{{ID: 1, Name: "Soap"}}
	days := dayStrings(day(1), day(2))
	set := metricSet{sales: true}

	sales := []models.Sale{{
		ProductId: 1,
		Date:      day(9),
		Qty:       decimal.RequireFromString("3"),
		UnitPrice: decimal.RequireFromString("2"),
	}}

	series := assembleSeries(products, days, set, nil, sales, nil)
	for _, point := range series[0].Data {
		if point.SalesQty == nil || *point.SalesQty != 0 {
			t.Fatalf("expected out-of-window sale to be dropped, got %v on %s", point.SalesQty, point.Date)
		}
	}
}

func TestAssembleSeries_IgnoresUnknownProductRows(t *testing.T) {
	products := []models.Product{{ID: 1, Name: "Soap"}}
	days := dayStrings(day(1), day(1))
	set := metricSet{procurement: true}

	procurements := []models.Procurement{{
		ProductId: 99,
		Date:      day(1),
		Qty:       decimal.RequireFromString("4"),
		UnitPrice: decimal.RequireFromString("1"),
	}}

	series := assembleSeries(products, days, set, procurements, nil, nil)
	point := series[0].Data[0]
	if point.ProcurementQty == nil || *point.ProcurementQty != 0 {
		t.Fatalf("expected rows for unlisted products to be ignored, got %v", point.ProcurementQty)
	}
}

func TestToMetricSet(t *testing.T) {
	set := toMetricSet([]string{MetricSales, MetricSales, MetricEndInventory})
	if set.procurement || !set.sales || !set.endInventory {
		t.Fatalf("unexpected metric set: %+v", set)
	}
	if toMetricSet(nil) != (metricSet{}) {
		t.Fatal("expected empty set for no metrics")
	}
}
