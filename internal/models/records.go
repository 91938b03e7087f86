package models

import (
	"time"
)

// ScanRow is the persisted form of a ScanRecord. Seq orders rows so that the
// highest value is the newest entry.
type ScanRow struct {
	Seq             uint       `gorm:"primaryKey;autoIncrement"`
	ScanID          string     `gorm:"size:16;index;not null"`
	Target          string     `gorm:"size:1024;not null"`
	Status          ScanStatus `gorm:"size:16;not null"`
	FinishedAt      string     `gorm:"size:32;not null"`
	Vulnerabilities int        `gorm:"not null;default:0"`
	CreatedAt       time.Time
}

// TableName returns the table name for the ScanRow model
func (ScanRow) TableName() string {
	return "scan_history"
}

// Record converts the row to its API form
func (r ScanRow) Record() ScanRecord {
	return ScanRecord{
		ScanID:          r.ScanID,
		Target:          r.Target,
		Status:          r.Status,
		FinishedAt:      r.FinishedAt,
		Vulnerabilities: r.Vulnerabilities,
	}
}

// NewScanRow converts a ScanRecord to its persisted form
func NewScanRow(rec ScanRecord) ScanRow {
	return ScanRow{
		ScanID:          rec.ScanID,
		Target:          rec.Target,
		Status:          rec.Status,
		FinishedAt:      rec.FinishedAt,
		Vulnerabilities: rec.Vulnerabilities,
	}
}

// QCRow is the persisted form of a QcHistoryEntry
type QCRow struct {
	Seq       uint       `gorm:"primaryKey;autoIncrement"`
	EntryID   int        `gorm:"column:entry_id;index;not null"`
	Filename  string     `gorm:"size:1024;not null"`
	Decision  QCDecision `gorm:"size:8;not null"`
	Timestamp string     `gorm:"size:32;not null"`
	Defects   int        `gorm:"not null;default:0"`
	CreatedAt time.Time
}

// TableName returns the table name for the QCRow model
func (QCRow) TableName() string {
	return "qc_history"
}

// Entry converts the row to its API form
func (r QCRow) Entry() QcHistoryEntry {
	return QcHistoryEntry{
		ID:        r.EntryID,
		Filename:  r.Filename,
		Decision:  r.Decision,
		Timestamp: r.Timestamp,
		Defects:   r.Defects,
	}
}

// NewQCRow converts a QcHistoryEntry to its persisted form
func NewQCRow(e QcHistoryEntry) QCRow {
	return QCRow{
		EntryID:   e.ID,
		Filename:  e.Filename,
		Decision:  e.Decision,
		Timestamp: e.Timestamp,
		Defects:   e.Defects,
	}
}
