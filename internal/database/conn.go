package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/trishulai/trishul-api/internal/config"
	"gorm.io/gorm"
)

// ErrNotConnected is returned by operations on a database before Connect
var ErrNotConnected = errors.New("database connection not established")

const pingTimeout = 5 * time.Second

// conn is the driver independent half of Database. Drivers embed it and
// call attach from Connect.
type conn struct {
	cfg   *config.Config
	log   *logrus.Logger
	db    *gorm.DB
	sqlDB *sql.DB
}

func (c *conn) attach(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}
	c.db = db
	c.sqlDB = sqlDB
	return nil
}

// DB returns the gorm handle
func (c *conn) DB() *gorm.DB {
	return c.db
}

// Close closes the pool. Closing an unconnected database is a no-op.
func (c *conn) Close() error {
	if c.sqlDB == nil {
		return nil
	}
	return c.sqlDB.Close()
}

// Ping checks the server answers within pingTimeout
func (c *conn) Ping() error {
	if c.sqlDB == nil {
		return ErrNotConnected
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return c.sqlDB.PingContext(ctx)
}

// Transaction runs fn in a transaction, rolling back when it returns an error
func (c *conn) Transaction(fn func(tx *gorm.DB) error) error {
	if c.db == nil {
		return ErrNotConnected
	}
	return c.db.Transaction(fn)
}

// Migrate auto-migrates the given models
func (c *conn) Migrate(models ...interface{}) error {
	if c.db == nil {
		return ErrNotConnected
	}
	return c.db.AutoMigrate(models...)
}
