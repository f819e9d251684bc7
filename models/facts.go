package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Daily facts share one grain: at most one row per product per calendar day.
// Dates are stored at UTC midnight so day boundaries never depend on server
// or caller local time.

type Procurement struct {
	ID        int             `gorm:"primary_key" json:"id"`
	ProductId int             `gorm:"not null;uniqueIndex:idx_procurement_product_date,priority:1" json:"product_id"`
	Date      time.Time       `gorm:"type:date;not null;uniqueIndex:idx_procurement_product_date,priority:2" json:"date"`
	Qty       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"qty"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type Sale struct {
	ID        int             `gorm:"primary_key" json:"id"`
	ProductId int             `gorm:"not null;uniqueIndex:idx_sale_product_date,priority:1" json:"product_id"`
	Date      time.Time       `gorm:"type:date;not null;uniqueIndex:idx_sale_product_date,priority:2" json:"date"`
	Qty       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"qty"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type InventorySnapshot struct {
	ID         int             `gorm:"primary_key" json:"id"`
	ProductId  int             `gorm:"not null;uniqueIndex:idx_snapshot_product_date,priority:1" json:"product_id"`
	Date       time.Time       `gorm:"type:date;not null;uniqueIndex:idx_snapshot_product_date,priority:2" json:"date"`
	OpeningQty decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"opening_qty"`
	ClosingQty decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"closing_qty"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func factConflict(updates ...string) clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns(append(updates, "updated_at")),
	}
}

// UpsertProcurements writes procurement facts keyed by (product_id, date).
// Re-ingesting the same key overwrites the prior values: last write wins.
func UpsertProcurements(tx *gorm.DB, rows []Procurement) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Clauses(factConflict("qty", "unit_price")).Create(&rows).Error
}

func UpsertSales(tx *gorm.DB, rows []Sale) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Clauses(factConflict("qty", "unit_price")).Create(&rows).Error
}

func UpsertInventorySnapshots(tx *gorm.DB, rows []InventorySnapshot) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Clauses(factConflict("opening_qty", "closing_qty")).Create(&rows).Error
}
