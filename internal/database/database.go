// Package database opens the SQL store behind the "database" history backend
// and keeps its schema current.
package database

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/trishulai/trishul-api/internal/config"
	"gorm.io/gorm"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// ErrUnsupportedType is returned for a database type other than sqlite or postgres
var ErrUnsupportedType = errors.New("unsupported database type")

// Database is a gorm connection together with its lifecycle
type Database interface {
	// DB returns the gorm handle, nil before Connect
	DB() *gorm.DB
	Connect() error
	Close() error
	Migrate(models ...interface{}) error
	Ping() error
	Transaction(fn func(tx *gorm.DB) error) error
}

// New returns an unconnected database of the configured type
func New(cfg *config.Config, log *logrus.Logger) (Database, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	switch cfg.Database.Type {
	case TypePostgres:
		return NewPostgresDB(cfg, log)
	case TypeSQLite:
		return NewSQLiteDB(cfg, log)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, cfg.Database.Type)
	}
}

// Open connects the configured database and migrates it. Seed rows are
// inserted into empty history tables when cfg.Storage.Seed is set.
func Open(cfg *config.Config, log *logrus.Logger) (Database, error) {
	db, err := New(cfg, log)
	if err != nil {
		return nil, err
	}

	log.WithField("type", cfg.Database.Type).Info("Connecting to database")
	if err := db.Connect(); err != nil {
		return nil, err
	}
	if err := prepare(db, cfg, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info("Database ready")
	return db, nil
}

func prepare(db Database, cfg *config.Config, log *logrus.Logger) error {
	options := DefaultMigrateOptions()
	options.Logger = log.Infof

	migrator, err := NewMigrator(db.DB(), options)
	if err != nil {
		return err
	}
	migrator.RegisterAllMigrations()
	if err := migrator.MigrateUp(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if !cfg.Storage.Seed {
		return nil
	}
	return SeedHistory(db.DB())
}

// MockDatabase is a Database for tests. Every method except DB returns Err.
type MockDatabase struct {
	handle *gorm.DB
	Err    error
	Closed bool
}

// NewMockDatabase returns a MockDatabase whose DB method returns handle
func NewMockDatabase(handle *gorm.DB, err error) *MockDatabase {
	return &MockDatabase{handle: handle, Err: err}
}

func (m *MockDatabase) DB() *gorm.DB { return m.handle }
func (m *MockDatabase) Connect() error { return m.Err }
func (m *MockDatabase) Migrate(models ...interface{}) error { return m.Err }
func (m *MockDatabase) Ping() error { return m.Err }

// Close records the call and returns Err
func (m *MockDatabase) Close() error {
	m.Closed = true
	return m.Err
}

// Transaction runs fn on the handle unless Err is set
func (m *MockDatabase) Transaction(fn func(tx *gorm.DB) error) error {
	if m.Err != nil {
		return m.Err
	}
	if m.handle == nil {
		return ErrNotConnected
	}
	return fn(m.handle)
}
