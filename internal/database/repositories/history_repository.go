package repositories

import (
	"context"
	"fmt"

	"github.com/trishulai/trishul-api/internal/models"
	"gorm.io/gorm"
)

// GormScanRepository implements store.ScanStore using GORM
type GormScanRepository struct {
	db *gorm.DB
}

// NewGormScanRepository creates a new GORM scan history repository
func NewGormScanRepository(db *gorm.DB) *GormScanRepository {
	return &GormScanRepository{db: db}
}

// List returns all scan records, newest first
func (r *GormScanRepository) List(ctx context.Context) ([]models.ScanRecord, error) {
	var rows []models.ScanRow
	if err := r.db.WithContext(ctx).Order("seq desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list scan history: %w", err)
	}

	records := make([]models.ScanRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Record())
	}
	return records, nil
}

// Prepend stores rec as the newest scan record
func (r *GormScanRepository) Prepend(ctx context.Context, rec models.ScanRecord) error {
	row := models.NewScanRow(rec)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create scan record: %w", err)
	}
	return nil
}

// GormQCRepository implements store.QCStore using GORM
type GormQCRepository struct {
	db *gorm.DB
}

// NewGormQCRepository creates a new GORM QC history repository
func NewGormQCRepository(db *gorm.DB) *GormQCRepository {
	return &GormQCRepository{db: db}
}

// List returns all QC entries, newest first
func (r *GormQCRepository) List(ctx context.Context) ([]models.QcHistoryEntry, error) {
	var rows []models.QCRow
	if err := r.db.WithContext(ctx).Order("seq desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list qc history: %w", err)
	}

	entries := make([]models.QcHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.Entry())
	}
	return entries, nil
}

// Len returns the number of QC entries
func (r *GormQCRepository) Len(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.QCRow{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count qc history: %w", err)
	}
	return int(count), nil
}

// Prepend stores entry as the newest QC entry
func (r *GormQCRepository) Prepend(ctx context.Context, entry models.QcHistoryEntry) error {
	row := models.NewQCRow(entry)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create qc entry: %w", err)
	}
	return nil
}
