package reports

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/dashboard_backend/models"
	"gorm.io/gorm"
)

// Daily series report: the chart-data read path. It never writes; facts are
// owned by the ingestion pipeline.

const (
	MetricProcurement  = "procurement"
	MetricSales        = "sales"
	MetricEndInventory = "endInventory"

	// MaxRangeDays bounds one query window, inclusive of both endpoints.
	MaxRangeDays = 7

	dayFormat = "2006-01-02"
)

var (
	ErrInvalidRange  = errors.New("invalid date range: 'to' must be after or equal to 'from'")
	ErrRangeTooLarge = errors.New("max 7 days allowed")
	ErrNoMetrics     = errors.New("no valid metrics requested")
)

// DayPoint carries exactly the fields for the metrics the caller requested;
// fields for non-requested metrics stay nil and are absent from the JSON.
type DayPoint struct {
	Date                 string   `json:"date"`
	ProcurementQty       *float64 `json:"procurementQty,omitempty"`
	ProcurementUnitPrice *float64 `json:"procurementUnitPrice,omitempty"`
	SalesQty             *float64 `json:"salesQty,omitempty"`
	SalesUnitPrice       *float64 `json:"salesUnitPrice,omitempty"`
	EndInventoryQty      *float64 `json:"endInventoryQty,omitempty"`
}

type ProductSeries struct {
	ProductId   int        `json:"productId"`
	ProductName string     `json:"productName"`
	Data        []DayPoint `json:"data"`
}

type metricSet struct {
	procurement  bool
	sales        bool
	endInventory bool
}

// ParseMetrics filters a requested metric list down to the known metric
// names, dropping unknown ones.
func ParseMetrics(requested []string) []string {
	known := make([]string, 0, len(requested))
	for _, m := range requested {
		switch m {
		case MetricProcurement, MetricSales, MetricEndInventory:
			known = append(known, m)
		}
	}
	return known
}

func toMetricSet(metrics []string) metricSet {
	var set metricSet
	for _, m := range metrics {
		switch m {
		case MetricProcurement:
			set.procurement = true
		case MetricSales:
			set.sales = true
		case MetricEndInventory:
			set.endInventory = true
		}
	}
	return set
}

// ValidateRange checks the inclusive [from, to] window: order first, then the
// span cap. Both from and to must already be UTC midnights.
func ValidateRange(from, to time.Time) error {
	days := rangeDays(from, to)
	if days < 1 {
		return ErrInvalidRange
	}
	if days > MaxRangeDays {
		return ErrRangeTooLarge
	}
	return nil
}

func rangeDays(from, to time.Time) int {
	return int(to.Sub(from).Hours()/24) + 1
}

// dayStrings builds the canonical ascending day list for the inclusive range,
// anchored at UTC midnight so day boundaries never shift with local time.
func dayStrings(from, to time.Time) []string {
	days := make([]string, 0, rangeDays(from, to))
	for t := from; !t.After(to); t = t.AddDate(0, 0, 1) {
		days = append(days, t.Format(dayFormat))
	}
	return days
}

func zeroPoint(day string, set metricSet) DayPoint {
	point := DayPoint{Date: day}
	if set.procurement {
		point.ProcurementQty = new(float64)
		point.ProcurementUnitPrice = new(float64)
	}
	if set.sales {
		point.SalesQty = new(float64)
		point.SalesUnitPrice = new(float64)
	}
	if set.endInventory {
		point.EndInventoryQty = new(float64)
	}
	return point
}

// assembleSeries zero-fills every (product, day) point and overlays fetched
// fact rows by exact day-string match. Rows whose date normalizes outside the
// canonical day list are dropped silently.
func assembleSeries(
	products []models.Product,
	days []string,
	set metricSet,
	procurements []models.Procurement,
	sales []models.Sale,
	snapshots []models.InventorySnapshot,
) []ProductSeries {
	grouped := make(map[int]map[string]*DayPoint, len(products))
	for _, p := range products {
		byDay := make(map[string]*DayPoint, len(days))
		for _, day := range days {
			point := zeroPoint(day, set)
			byDay[day] = &point
		}
		grouped[p.ID] = byDay
	}

	for _, r := range procurements {
		if point := grouped[r.ProductId][r.Date.UTC().Format(dayFormat)]; point != nil {
			qty := r.Qty.InexactFloat64()
			price := r.UnitPrice.InexactFloat64()
			point.ProcurementQty = &qty
			point.ProcurementUnitPrice = &price
		}
	}
	for _, r := range sales {
		if point := grouped[r.ProductId][r.Date.UTC().Format(dayFormat)]; point != nil {
			qty := r.Qty.InexactFloat64()
			price := r.UnitPrice.InexactFloat64()
			point.SalesQty = &qty
			point.SalesUnitPrice = &price
		}
	}
	for _, r := range snapshots {
		if point := grouped[r.ProductId][r.Date.UTC().Format(dayFormat)]; point != nil {
			closing := r.ClosingQty.InexactFloat64()
			point.EndInventoryQty = &closing
		}
	}

	series := make([]ProductSeries, 0, len(products))
	for _, p := range products {
		data := make([]DayPoint, 0, len(days))
		for _, day := range days {
			data = append(data, *grouped[p.ID][day])
		}
		series = append(series, ProductSeries{ProductId: p.ID, ProductName: p.Name, Data: data})
	}
	return series
}

// BuildDailySeries produces one dense, zero-filled daily series per resolved
// product for the inclusive [from, to] window. Requested product ids missing
// from the catalog are silently omitted. Only the fact tables backing
// requested metrics are queried.
func BuildDailySeries(ctx context.Context, db *gorm.DB, productIds []int, from, to time.Time, metrics []string) ([]ProductSeries, error) {
	if err := ValidateRange(from, to); err != nil {
		return nil, err
	}
	set := toMetricSet(metrics)
	if set == (metricSet{}) {
		return nil, ErrNoMetrics
	}

	var products []models.Product
	if err := db.WithContext(ctx).
		Select("id", "name").
		Where("id IN ?", productIds).
		Find(&products).Error; err != nil {
		return nil, err
	}

	days := dayStrings(from, to)

	resolvedIds := make([]int, 0, len(products))
	for _, p := range products {
		resolvedIds = append(resolvedIds, p.ID)
	}

	var procurements []models.Procurement
	var sales []models.Sale
	var snapshots []models.InventorySnapshot
	if len(resolvedIds) > 0 {
		if set.procurement {
			if err := db.WithContext(ctx).
				Where("product_id IN ? AND date BETWEEN ? AND ?", resolvedIds, from, to).
				Find(&procurements).Error; err != nil {
				return nil, err
			}
		}
		if set.sales {
			if err := db.WithContext(ctx).
				Where("product_id IN ? AND date BETWEEN ? AND ?", resolvedIds, from, to).
				Find(&sales).Error; err != nil {
				return nil, err
			}
		}
		if set.endInventory {
			if err := db.WithContext(ctx).
				Where("product_id IN ? AND date BETWEEN ? AND ?", resolvedIds, from, to).
				Find(&snapshots).Error; err != nil {
				return nil, err
			}
		}
	}

	return assembleSeries(products, days, set, procurements, sales, snapshots), nil
}
