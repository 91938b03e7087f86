package database

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/trishulai/trishul-api/internal/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MemoryPath opens a private in-memory SQLite database
const MemoryPath = ":memory:"

const defaultSQLitePath = "trishul.db"

// SQLiteDB is a Database on a SQLite file, or in memory with MemoryPath
type SQLiteDB struct {
	conn
}

// NewSQLiteDB returns an unconnected SQLite database
func NewSQLiteDB(cfg *config.Config, log *logrus.Logger) (*SQLiteDB, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	return &SQLiteDB{conn: conn{cfg: cfg, log: log}}, nil
}

func (s *SQLiteDB) path() string {
	if p := s.cfg.Database.SQLite.Path; p != "" {
		return p
	}
	return defaultSQLitePath
}

// Connect opens the database file, creating its directory if needed
func (s *SQLiteDB) Connect() error {
	path := s.path()
	inMemory := path == MemoryPath
	if !inMemory {
		if err := config.EnsureFileDirectory(path); err != nil {
			return fmt.Errorf("failed to create directory for SQLite database: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), gormConfig(s.cfg.Logging.Level, s.log))
	if err != nil {
		return fmt.Errorf("failed to connect to SQLite database: %w", err)
	}
	if err := setPragmas(db, inMemory); err != nil && s.log != nil {
		s.log.WithError(err).Warn("Failed to set SQLite pragmas")
	}
	if err := s.attach(db); err != nil {
		return err
	}

	// One connection serializes writes and keeps an in-memory database shared
	s.sqlDB.SetMaxOpenConns(1)
	s.sqlDB.SetMaxIdleConns(1)
	if lifetime := s.cfg.Database.ConnMaxLifetime; lifetime > 0 && !inMemory {
		s.sqlDB.SetConnMaxLifetime(lifetime)
	}
	return nil
}

func setPragmas(db *gorm.DB, inMemory bool) error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA temp_store = MEMORY",
	}
	if !inMemory {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL", "PRAGMA synchronous = NORMAL")
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}
