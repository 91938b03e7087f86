// Package kavach implements the mock vulnerability scanning service.
package kavach

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/trishulai/trishul-api/internal/archive"
	"github.com/trishulai/trishul-api/internal/latency"
	"github.com/trishulai/trishul-api/internal/models"
	"github.com/trishulai/trishul-api/internal/random"
	"github.com/trishulai/trishul-api/internal/store"
)

// Simulated durations
const (
	CreateDelay = 1000 * time.Millisecond
	ListDelay   = 500 * time.Millisecond
	ReportDelay = 800 * time.Millisecond
)

// Messages
const (
	MsgScanInitiated   = "Scan initiated successfully"
	MsgReportGenerated = "Report generated successfully"
)

// ReportContentType is the media type of generated reports
const ReportContentType = "text/plain"

// reportTimeLayout renders timestamps as ISO-8601 UTC with milliseconds
const reportTimeLayout = "2006-01-02T15:04:05.000Z"

var extensionPattern = regexp.MustCompile(`\.[^/.]+$`)

// Config holds the dependencies of the scan service
type Config struct {
	Store    store.ScanStore
	Sleeper  latency.Sleeper
	Random   random.Source
	Clock    func() time.Time
	Archiver archive.Archiver
	Logger   *logrus.Logger
}

// Service is the Kavach scan service
type Service struct {
	store    store.ScanStore
	sleeper  latency.Sleeper
	rnd      random.Source
	clock    func() time.Time
	archiver archive.Archiver
	logger   *logrus.Logger
}

// NewService creates a scan service
func NewService(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("scan store is required")
	}
	if cfg.Sleeper == nil {
		cfg.Sleeper = latency.NewReal(1)
	}
	if cfg.Random == nil {
		cfg.Random = random.New(0)
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Archiver == nil {
		cfg.Archiver = archive.Noop{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	return &Service{
		store:    cfg.Store,
		sleeper:  cfg.Sleeper,
		rnd:      cfg.Random,
		clock:    cfg.Clock,
		archiver: cfg.Archiver,
		logger:   cfg.Logger,
	}, nil
}

// TargetFromFilename strips the final extension from a file name
func TargetFromFilename(name string) string {
	return extensionPattern.ReplaceAllString(name, "")
}

// NewScanID draws a scan identifier in SCN-000..SCN-998. Collisions with
// existing records are possible and not checked.
func NewScanID(src random.Source) string {
	return fmt.Sprintf("SCN-%03d", random.Intn(src, 999))
}

// CreateScan registers a scan for the uploaded target file and returns its id
func (s *Service) CreateScan(ctx context.Context, file models.UploadedFile) (models.Envelope[models.ScanCreated], error) {
	if err := s.sleeper.Sleep(ctx, CreateDelay); err != nil {
		return models.Envelope[models.ScanCreated]{}, err
	}

	rec := models.ScanRecord{
		ScanID:          NewScanID(s.rnd),
		Target:          TargetFromFilename(file.Name),
		Status:          models.ScanStatusRunning,
		FinishedAt:      models.NotFinished,
		Vulnerabilities: 0,
	}
	if err := s.store.Prepend(ctx, rec); err != nil {
		return models.Envelope[models.ScanCreated]{}, fmt.Errorf("failed to record scan: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"scan_id": rec.ScanID,
		"target":  rec.Target,
	}).Info("Scan initiated")

	return models.Ok(models.ScanCreated{ScanID: rec.ScanID}, MsgScanInitiated), nil
}

// ListScans returns the scan history, newest first
func (s *Service) ListScans(ctx context.Context) (models.Envelope[[]models.ScanRecord], error) {
	if err := s.sleeper.Sleep(ctx, ListDelay); err != nil {
		return models.Envelope[[]models.ScanRecord]{}, err
	}

	records, err := s.store.List(ctx)
	if err != nil {
		return models.Envelope[[]models.ScanRecord]{}, fmt.Errorf("failed to list scans: %w", err)
	}
	return models.Ok(records, ""), nil
}

// GetReport renders the text report for scanID. The id is not looked up,
// so unknown ids still yield a report.
func (s *Service) GetReport(ctx context.Context, scanID string) (models.Envelope[models.Report], error) {
	if err := s.sleeper.Sleep(ctx, ReportDelay); err != nil {
		return models.Envelope[models.Report]{}, err
	}

	now := s.clock().UTC()
	report := models.Report{
		ScanID:      scanID,
		Filename:    scanID + "-report.txt",
		ContentType: ReportContentType,
		GeneratedAt: now,
		Content:     []byte(fmt.Sprintf("Vulnerability Report for %s\n\nGenerated: %s", scanID, now.Format(reportTimeLayout))),
	}

	key := fmt.Sprintf("reports/%s/%d.txt", scanID, now.UnixNano())
	if err := s.archiver.Store(ctx, key, report.ContentType, report.Content); err != nil {
		s.logger.WithError(err).WithField("scan_id", scanID).Warn("Failed to archive report")
	}

	return models.Ok(report, MsgReportGenerated), nil
}
