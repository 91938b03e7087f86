package database

import (
	"fmt"

	"github.com/trishulai/trishul-api/internal/models"
	"github.com/trishulai/trishul-api/internal/store"
	"gorm.io/gorm"
)

// SeedHistory inserts the seed scan and QC rows into empty tables
func SeedHistory(db *gorm.DB) error {
	scans := store.SeedScans()
	scanRows := make([]models.ScanRow, len(scans))
	for i, rec := range scans {
		scanRows[i] = models.NewScanRow(rec)
	}

	entries := store.SeedQCHistory()
	qcRows := make([]models.QCRow, len(entries))
	for i, entry := range entries {
		qcRows[i] = models.NewQCRow(entry)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedTable(tx, "scan history", scanRows); err != nil {
			return err
		}
		return seedTable(tx, "qc history", qcRows)
	})
}

// seedTable inserts rows, given newest first, when the table is empty. Rows
// go in oldest first so descending seq order lists the newest first.
func seedTable[R any](tx *gorm.DB, name string, rows []R) error {
	var count int64
	if err := tx.Model(new(R)).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count %s: %w", name, err)
	}
	if count > 0 {
		return nil
	}

	for i := len(rows) - 1; i >= 0; i-- {
		if err := tx.Create(&rows[i]).Error; err != nil {
			return fmt.Errorf("failed to seed %s: %w", name, err)
		}
	}
	return nil
}
