// Package store holds the mock data stores behind the Trishul services.
package store

import (
	"context"
	"errors"

	"github.com/trishulai/trishul-api/internal/models"
)

// ErrUnknownBackend is returned for a storage backend name that is not supported
var ErrUnknownBackend = errors.New("unknown storage backend")

// Storage backends
const (
	BackendMemory   = "memory"
	BackendDatabase = "database"
)

// ScanStore is the Kavach scan history, newest first
type ScanStore interface {
	List(ctx context.Context) ([]models.ScanRecord, error)
	Prepend(ctx context.Context, rec models.ScanRecord) error
}

// QCStore is the Trinetra QC decision history, newest first
type QCStore interface {
	List(ctx context.Context) ([]models.QcHistoryEntry, error)
	Len(ctx context.Context) (int, error)
	Prepend(ctx context.Context, entry models.QcHistoryEntry) error
}
