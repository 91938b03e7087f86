package database

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/trishulai/trishul-api/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgresDB is a Database on PostgreSQL
type PostgresDB struct {
	conn
}

// NewPostgresDB returns an unconnected PostgreSQL database
func NewPostgresDB(cfg *config.Config, log *logrus.Logger) (*PostgresDB, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	return &PostgresDB{conn: conn{cfg: cfg, log: log}}, nil
}

// DSN returns the key/value connection string
func (p *PostgresDB) DSN() string {
	d := p.cfg.Database
	return strings.Join([]string{
		"host=" + d.Host,
		"port=" + strconv.Itoa(d.Port),
		"user=" + d.User,
		"password=" + d.Password,
		"dbname=" + d.Name,
		"sslmode=" + sslMode(d.SSLMode),
	}, " ")
}

// Connect opens the pool and applies the configured limits
func (p *PostgresDB) Connect() error {
	db, err := gorm.Open(postgres.Open(p.DSN()), gormConfig(p.cfg.Logging.Level, p.log))
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := p.attach(db); err != nil {
		return err
	}

	pool := p.cfg.Database
	p.sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	p.sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	if pool.ConnMaxLifetime > 0 {
		p.sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	if pool.ConnMaxIdleTime > 0 {
		p.sqlDB.SetConnMaxIdleTime(pool.ConnMaxIdleTime)
	}
	return nil
}

// sslMode lowercases mode, falling back to disable for values PostgreSQL
// clients do not share
func sslMode(mode string) string {
	switch mode = strings.ToLower(mode); mode {
	case "disable", "require", "verify-ca", "verify-full":
		return mode
	}
	return "disable"
}
