package models

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/mmdatafocus/dashboard_backend/config"
	"github.com/mmdatafocus/dashboard_backend/utils"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrMalformedUpload marks client-side failures: the payload is not a
	// readable workbook. Distinct from ErrNoValidRows.
	ErrMalformedUpload = errors.New("could not read spreadsheet")

	// ErrNoValidRows is returned when every data row was skipped or rejected.
	// Nothing is written and no audit record is created.
	ErrNoValidRows = errors.New("no valid rows found")
)

// FactWrites is the pending write set for one ingestion run. Building it has
// no side effects; execution happens in one transaction in the orchestrator.
type FactWrites struct {
	Procurements []Procurement
	Sales        []Sale
	Snapshots    []InventorySnapshot
}

func (w *FactWrites) merge(o FactWrites) {
	w.Procurements = append(w.Procurements, o.Procurements...)
	w.Sales = append(w.Sales, o.Sales...)
	w.Snapshots = append(w.Snapshots, o.Snapshots...)
}

// BuildFactWrites converts one validated row into pending upserts.
//
// Procurement and sale facts are only written when both qty and price are
// positive. The inventory snapshot is written for every row, and its closing
// quantity uses the row's raw quantities even when the procurement or sale
// fact itself was withheld:
//
//	closing = opening + procurementQty - salesQty
func BuildFactWrites(row ImportRow, productId int) FactWrites {
	var w FactWrites

	if row.ProcurementQty.IsPositive() && row.ProcurementPrice.IsPositive() {
		w.Procurements = append(w.Procurements, Procurement{
			ProductId: productId,
			Date:      row.Date,
			Qty:       row.ProcurementQty,
			UnitPrice: row.ProcurementPrice,
		})
	}

	if row.SalesQty.IsPositive() && row.SalesPrice.IsPositive() {
		w.Sales = append(w.Sales, Sale{
			ProductId: productId,
			Date:      row.Date,
			Qty:       row.SalesQty,
			UnitPrice: row.SalesPrice,
		})
	}

	w.Snapshots = append(w.Snapshots, InventorySnapshot{
		ProductId:  productId,
		Date:       row.Date,
		OpeningQty: row.OpeningQty,
		ClosingQty: row.OpeningQty.Add(row.ProcurementQty).Sub(row.SalesQty),
	})

	return w
}

// ImportResult summarizes one ingestion run for the HTTP layer.
type ImportResult struct {
	Processed int          `json:"processed"`
	Status    UploadStatus `json:"status"`
	Errors    []RowError   `json:"errors,omitempty"`
}

// ImportDailyRecordsFromXlsx drives one ingestion run: decode the workbook,
// validate every row, resolve products, and apply all fact upserts in one
// transaction. Exactly one UploadHistory row is recorded after a successful
// commit; any resolution or write failure rolls everything back and leaves no
// audit record.
func ImportDailyRecordsFromXlsx(ctx context.Context, fileName string, file io.Reader, userId int) (*ImportResult, error) {
	logger := config.GetLogger()

	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedUpload, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedUpload, err)
	}

	validated := make([]ImportRow, 0, len(rows))
	rowErrors := make([]RowError, 0)
	if len(rows) > 0 {
		header := rows[0]
		for idx, raw := range rows[1:] {
			cells := make(map[string]string, len(header))
			for col, key := range header {
				if col < len(raw) {
					cells[key] = raw[col]
				}
			}
			row, rowErr := ValidateImportRow(cells, idx+2)
			if rowErr != nil {
				rowErrors = append(rowErrors, *rowErr)
				continue
			}
			if row != nil {
				validated = append(validated, *row)
			}
		}
	}

	if len(validated) == 0 {
		return &ImportResult{Processed: 0, Errors: rowErrors}, ErrNoValidRows
	}

	// Best-effort serialization of one uploader's runs. Correctness does not
	// depend on it: the write batch below is atomic and keyed upserts make
	// overlapping runs resolve to last-write-wins.
	release := utils.ImportLock(ctx, strconv.Itoa(userId), "importFacts.go", "ImportDailyRecordsFromXlsx")
	defer release()

	db := config.GetDB()
	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	names := make([]string, 0, len(validated))
	for _, row := range validated {
		names = append(names, row.ProductName)
	}
	skuToId, err := ResolveProducts(ctx, tx, names)
	if err != nil {
		tx.Rollback()
		config.LogError(logger, "importFacts.go", "ImportDailyRecordsFromXlsx", "ResolveProducts", fileName, err)
		return nil, err
	}

	var writes FactWrites
	for _, row := range validated {
		productId, ok := skuToId[NormalizeSku(row.ProductName)]
		if !ok {
			tx.Rollback()
			return nil, fmt.Errorf("unresolved product %q in row %d", row.ProductName, row.RowNumber)
		}
		w := BuildFactWrites(row, productId)
		writes.merge(w)
	}

	if err := UpsertProcurements(tx.WithContext(ctx), writes.Procurements); err != nil {
		tx.Rollback()
		config.LogError(logger, "importFacts.go", "ImportDailyRecordsFromXlsx", "UpsertProcurements", fileName, err)
		return nil, err
	}
	if err := UpsertSales(tx.WithContext(ctx), writes.Sales); err != nil {
		tx.Rollback()
		config.LogError(logger, "importFacts.go", "ImportDailyRecordsFromXlsx", "UpsertSales", fileName, err)
		return nil, err
	}
	if err := UpsertInventorySnapshots(tx.WithContext(ctx), writes.Snapshots); err != nil {
		tx.Rollback()
		config.LogError(logger, "importFacts.go", "ImportDailyRecordsFromXlsx", "UpsertInventorySnapshots", fileName, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		config.LogError(logger, "importFacts.go", "ImportDailyRecordsFromXlsx", "Commit", fileName, err)
		return nil, err
	}

	status := UploadStatusSuccess
	if len(rowErrors) > 0 {
		status = UploadStatusPartial
	}
	history := UploadHistory{
		FileName: fileName,
		RowCount: len(validated),
		Status:   status,
		UserId:   userId,
	}
	if len(rowErrors) > 0 {
		serialized, merr := utils.MarshalToJSON(rowErrors)
		if merr != nil {
			config.LogError(logger, "importFacts.go", "ImportDailyRecordsFromXlsx", "marshal row errors", fileName, merr)
		} else {
			history.Errors = &serialized
		}
	}
	if err := db.WithContext(ctx).Create(&history).Error; err != nil {
		config.LogError(logger, "importFacts.go", "ImportDailyRecordsFromXlsx", "create upload history", fileName, err)
		return nil, err
	}

	return &ImportResult{Processed: len(validated), Status: status, Errors: rowErrors}, nil
}
