package database

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/trishulai/trishul-api/internal/models"
	"gorm.io/gorm"
)

// ErrDestructiveMigration is returned by MigrateDown without the Force option
var ErrDestructiveMigration = errors.New("rolling back migrations drops history tables, use the force option to proceed")

// Migration is one versioned schema step
type Migration struct {
	Version int
	Name    string
	Up      func(tx *gorm.DB) error
	Down    func(tx *gorm.DB) error
}

// MigrationRecord marks a migration as applied
type MigrationRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Version   int    `gorm:"uniqueIndex"`
	Name      string `gorm:"size:255"`
	AppliedAt time.Time
}

// MigrationStatus reports whether a registered migration has been applied
type MigrationStatus struct {
	Version   int
	Name      string
	Applied   bool
	AppliedAt *time.Time
}

// MigrateOptions tunes a Migrator
type MigrateOptions struct {
	DryRun bool // log steps without running them
	Force  bool // allow MigrateDown
	Silent bool
	Logger func(format string, args ...interface{})
}

// DefaultMigrateOptions logs to stdout
func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		Logger: func(format string, args ...interface{}) {
			fmt.Printf(format+"\n", args...)
		},
	}
}

// Migrator applies registered migrations in version order, recording each
// in the migration_records table
type Migrator struct {
	db         *gorm.DB
	migrations []*Migration
	options    MigrateOptions
}

// NewMigrator returns a Migrator for db
func NewMigrator(db *gorm.DB, options MigrateOptions) (*Migrator, error) {
	if db == nil {
		return nil, errors.New("database connection is required for migrations")
	}
	return &Migrator{db: db, options: options}, nil
}

// AddMigrations registers migrations, keeping them sorted by version
func (m *Migrator) AddMigrations(migrations ...*Migration) {
	m.migrations = append(m.migrations, migrations...)
	sort.Slice(m.migrations, func(i, j int) bool {
		return m.migrations[i].Version < m.migrations[j].Version
	})
}

// RegisterAllMigrations registers one table per history store
func (m *Migrator) RegisterAllMigrations() {
	m.AddMigrations(
		tableMigration(1, "create_scan_history", &models.ScanRow{}),
		tableMigration(2, "create_qc_history", &models.QCRow{}),
	)
}

func tableMigration(version int, name string, model interface{}) *Migration {
	return &Migration{
		Version: version,
		Name:    name,
		Up:      func(tx *gorm.DB) error { return tx.AutoMigrate(model) },
		Down:    func(tx *gorm.DB) error { return tx.Migrator().DropTable(model) },
	}
}

// MigrateUp applies every migration newer than the current version
func (m *Migrator) MigrateUp() error {
	if err := m.db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create migration records table: %w", err)
	}
	current, err := m.GetCurrentVersion()
	if err != nil {
		return err
	}

	for _, mig := range m.migrations {
		if mig.Version <= current {
			continue
		}
		m.log("Migrating to version %d: %s", mig.Version, mig.Name)
		if m.options.DryRun {
			continue
		}
		if err := m.db.Transaction(func(tx *gorm.DB) error { return m.up(tx, mig) }); err != nil {
			return err
		}
	}

	current, err = m.GetCurrentVersion()
	if err != nil {
		return err
	}
	m.log("Database is at version %d", current)
	return nil
}

// MigrateDown rolls back every applied migration above target. It requires
// the Force option.
func (m *Migrator) MigrateDown(target int) error {
	current, err := m.GetCurrentVersion()
	if err != nil {
		return err
	}
	if target >= current {
		return nil
	}
	if !m.options.Force {
		return ErrDestructiveMigration
	}

	for i := len(m.migrations) - 1; i >= 0; i-- {
		mig := m.migrations[i]
		if mig.Version <= target || mig.Version > current {
			continue
		}
		m.log("Rolling back version %d: %s", mig.Version, mig.Name)
		if m.options.DryRun {
			continue
		}
		if err := m.db.Transaction(func(tx *gorm.DB) error { return m.down(tx, mig) }); err != nil {
			return err
		}
	}
	return nil
}

func (m *Migrator) up(tx *gorm.DB, mig *Migration) error {
	if err := mig.Up(tx); err != nil {
		return fmt.Errorf("migration %d (%s) failed: %w", mig.Version, mig.Name, err)
	}
	record := MigrationRecord{Version: mig.Version, Name: mig.Name, AppliedAt: time.Now()}
	if err := tx.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to record migration %d: %w", mig.Version, err)
	}
	return nil
}

func (m *Migrator) down(tx *gorm.DB, mig *Migration) error {
	if err := mig.Down(tx); err != nil {
		return fmt.Errorf("rollback of migration %d (%s) failed: %w", mig.Version, mig.Name, err)
	}
	if err := tx.Where("version = ?", mig.Version).Delete(&MigrationRecord{}).Error; err != nil {
		return fmt.Errorf("failed to remove migration record %d: %w", mig.Version, err)
	}
	return nil
}

// GetCurrentVersion returns the highest applied version, 0 on a fresh database
func (m *Migrator) GetCurrentVersion() (int, error) {
	if !m.db.Migrator().HasTable(&MigrationRecord{}) {
		return 0, nil
	}
	var version int
	err := m.db.Model(&MigrationRecord{}).Select("COALESCE(MAX(version), 0)").Scan(&version).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get current migration version: %w", err)
	}
	return version, nil
}

// Status lists every registered migration with its applied state
func (m *Migrator) Status() ([]MigrationStatus, error) {
	applied := map[int]time.Time{}
	if m.db.Migrator().HasTable(&MigrationRecord{}) {
		var records []MigrationRecord
		if err := m.db.Find(&records).Error; err != nil {
			return nil, fmt.Errorf("failed to get migration records: %w", err)
		}
		for _, r := range records {
			applied[r.Version] = r.AppliedAt
		}
	}

	status := make([]MigrationStatus, len(m.migrations))
	for i, mig := range m.migrations {
		status[i] = MigrationStatus{Version: mig.Version, Name: mig.Name}
		if at, ok := applied[mig.Version]; ok {
			status[i].Applied = true
			status[i].AppliedAt = &at
		}
	}
	return status, nil
}

func (m *Migrator) log(format string, args ...interface{}) {
	if !m.options.Silent && m.options.Logger != nil {
		m.options.Logger(format, args...)
	}
}
