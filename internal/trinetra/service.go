// Package trinetra implements the mock visual defect inspection service.
package trinetra

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/trishulai/trishul-api/internal/latency"
	"github.com/trishulai/trishul-api/internal/models"
	"github.com/trishulai/trishul-api/internal/random"
	"github.com/trishulai/trishul-api/internal/store"
)

// Simulated durations
const (
	InferDelay   = 2500 * time.Millisecond
	SaveDelay    = 300 * time.Millisecond
	HistoryDelay = 400 * time.Millisecond
)

// Messages
const (
	MsgImageAnalyzed = "Image analysis completed successfully"
	MsgDecisionSaved = "QC decision saved successfully"
)

// Config holds the dependencies of the inspection service
type Config struct {
	Store   store.QCStore
	Sleeper latency.Sleeper
	Random  random.Source
	Clock   func() time.Time
	Logger  *logrus.Logger
}

// Service is the Trinetra inspection service
type Service struct {
	store   store.QCStore
	sleeper latency.Sleeper
	rnd     random.Source
	clock   func() time.Time
	logger  *logrus.Logger
}

// NewService creates an inspection service
func NewService(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("qc store is required")
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
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	return &Service{
		store:   cfg.Store,
		sleeper: cfg.Sleeper,
		rnd:     cfg.Random,
		clock:   cfg.Clock,
		logger:  cfg.Logger,
	}, nil
}

// InferImage runs simulated defect detection on the uploaded file
func (s *Service) InferImage(ctx context.Context, file models.UploadedFile) (models.Envelope[models.DetectionResult], error) {
	if err := s.sleeper.Sleep(ctx, InferDelay); err != nil {
		return models.Envelope[models.DetectionResult]{}, err
	}

	result := GenerateDetection(s.rnd)
	s.logger.WithFields(logrus.Fields{
		"file":          file.Name,
		"defects_found": result.DefectsFound,
	}).Debug("Inference completed")

	return models.Ok(result, MsgImageAnalyzed), nil
}

// SaveDecision records an operator QC verdict at the front of the history.
// The id is the history length plus one, read before the insert.
func (s *Service) SaveDecision(ctx context.Context, filename string, decision models.QCDecision, defects int) (models.Envelope[models.QcHistoryEntry], error) {
	if err := s.sleeper.Sleep(ctx, SaveDelay); err != nil {
		return models.Envelope[models.QcHistoryEntry]{}, err
	}

	n, err := s.store.Len(ctx)
	if err != nil {
		return models.Envelope[models.QcHistoryEntry]{}, fmt.Errorf("failed to count qc history: %w", err)
	}

	entry := models.QcHistoryEntry{
		ID:        n + 1,
		Filename:  filename,
		Decision:  decision,
		Timestamp: s.clock().Format(models.QCTimestampLayout),
		Defects:   defects,
	}
	if err := s.store.Prepend(ctx, entry); err != nil {
		return models.Envelope[models.QcHistoryEntry]{}, fmt.Errorf("failed to record qc decision: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":       entry.ID,
		"filename": filename,
		"decision": decision,
	}).Info("QC decision saved")

	return models.Ok(entry, MsgDecisionSaved), nil
}

// GetQCHistory returns the recorded decisions, newest first
func (s *Service) GetQCHistory(ctx context.Context) (models.Envelope[[]models.QcHistoryEntry], error) {
	if err := s.sleeper.Sleep(ctx, HistoryDelay); err != nil {
		return models.Envelope[[]models.QcHistoryEntry]{}, err
	}

	entries, err := s.store.List(ctx)
	if err != nil {
		return models.Envelope[[]models.QcHistoryEntry]{}, fmt.Errorf("failed to list qc history: %w", err)
	}
	return models.Ok(entries, ""), nil
}
