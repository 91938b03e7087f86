package store

import (
	"context"
	"sync"

	"github.com/trishulai/trishul-api/internal/models"
)

// MemoryScanStore keeps scan history in process memory
type MemoryScanStore struct {
	mu      sync.RWMutex
	records []models.ScanRecord
}

// NewMemoryScanStore returns a store holding a copy of initial
func NewMemoryScanStore(initial []models.ScanRecord) *MemoryScanStore {
	records := make([]models.ScanRecord, len(initial))
	copy(records, initial)
	return &MemoryScanStore{records: records}
}

// List returns a copy of all records, newest first
func (s *MemoryScanStore) List(ctx context.Context) ([]models.ScanRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ScanRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Prepend inserts rec at the front
func (s *MemoryScanStore) Prepend(ctx context.Context, rec models.ScanRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]models.ScanRecord{rec}, s.records...)
	return nil
}

// MemoryQCStore keeps QC history in process memory
type MemoryQCStore struct {
	mu      sync.RWMutex
	entries []models.QcHistoryEntry
}

// NewMemoryQCStore returns a store holding a copy of initial
func NewMemoryQCStore(initial []models.QcHistoryEntry) *MemoryQCStore {
	entries := make([]models.QcHistoryEntry, len(initial))
	copy(entries, initial)
	return &MemoryQCStore{entries: entries}
}

// List returns a copy of all entries, newest first
func (s *MemoryQCStore) List(ctx context.Context) ([]models.QcHistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.QcHistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Len returns the number of entries
func (s *MemoryQCStore) Len(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// Prepend inserts entry at the front
func (s *MemoryQCStore) Prepend(ctx context.Context, entry models.QcHistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]models.QcHistoryEntry{entry}, s.entries...)
	return nil
}
