package store

import (
	"github.com/trishulai/trishul-api/internal/models"
)

// SeedScans returns the initial scan history, newest first
func SeedScans() []models.ScanRecord {
	return []models.ScanRecord{
		{ScanID: "SCN-001", Target: "example.com", Status: models.ScanStatusCompleted, FinishedAt: "2025-09-06", Vulnerabilities: 3},
		{ScanID: "SCN-002", Target: "testserver.local", Status: models.ScanStatusCompleted, FinishedAt: "2025-09-05", Vulnerabilities: 1},
		{ScanID: "SCN-003", Target: "api.example.org", Status: models.ScanStatusRunning, FinishedAt: models.NotFinished, Vulnerabilities: 0},
	}
}

// SeedQCHistory returns the initial QC history, newest first
func SeedQCHistory() []models.QcHistoryEntry {
	return []models.QcHistoryEntry{
		{ID: 1, Filename: "product_batch_001.jpg", Decision: models.QCPass, Timestamp: "2025-09-06 14:30:22", Defects: 0},
		{ID: 2, Filename: "component_test_045.mp4", Decision: models.QCFail, Timestamp: "2025-09-06 13:15:11", Defects: 2},
		{ID: 3, Filename: "assembly_line_check.jpg", Decision: models.QCPass, Timestamp: "2025-09-06 12:45:33", Defects: 0},
	}
}

func actual(v float64) *float64 {
	return &v
}

// ForecastBase returns the six-month cost series, Jul through Dec 2025
func ForecastBase() []models.ForecastPoint {
	return []models.ForecastPoint{
		{Month: "Jul 2025", Actual: actual(180), Forecast: 185},
		{Month: "Aug 2025", Actual: actual(220), Forecast: 225},
		{Month: "Sep 2025", Actual: actual(195), Forecast: 190},
		{Month: "Oct 2025", Actual: nil, Forecast: 210},
		{Month: "Nov 2025", Actual: nil, Forecast: 245},
		{Month: "Dec 2025", Actual: nil, Forecast: 200},
	}
}

// ForecastExtended returns the twelve-month series: the base months
// followed by Jan through Jun 2026
func ForecastExtended() []models.ForecastPoint {
	return append(ForecastBase(),
		models.ForecastPoint{Month: "Jan 2026", Forecast: 230},
		models.ForecastPoint{Month: "Feb 2026", Forecast: 215},
		models.ForecastPoint{Month: "Mar 2026", Forecast: 250},
		models.ForecastPoint{Month: "Apr 2026", Forecast: 235},
		models.ForecastPoint{Month: "May 2026", Forecast: 270},
		models.ForecastPoint{Month: "Jun 2026", Forecast: 260},
	)
}

// Alerts returns the cost alert snapshot
func Alerts() []models.AlertMessage {
	return []models.AlertMessage{
		{ID: 1, Type: models.AlertWarning, Message: "⚠ Forecast exceeds $200 in Nov 2025", Severity: models.SeverityHigh},
		{ID: 2, Type: models.AlertSuccess, Message: "✅ Current usage within budget", Severity: models.SeverityLow},
		{ID: 3, Type: models.AlertInfo, Message: "📊 EC2 instances showing 15% increase trend", Severity: models.SeverityMedium},
	}
}
