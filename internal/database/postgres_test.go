package database

import (
	"bytes"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockPostgres(t *testing.T) (*PostgresDB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	// gorm pings on open
	mock.ExpectPing()
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	db, err := NewPostgresDB(newTestConfig("postgres"), newTestLogger())
	require.NoError(t, err)
	db.db = gormDB
	db.sqlDB = sqlDB
	return db, mock
}

func TestNewPostgresDB(t *testing.T) {
	db, err := NewPostgresDB(newTestConfig("postgres"), newTestLogger())
	require.NoError(t, err)
	assert.Nil(t, db.DB())
	assert.Error(t, db.Ping())

	_, err = NewPostgresDB(nil, nil)
	assert.Error(t, err)
}

func TestPostgresDB_DSN(t *testing.T) {
	cfg := newTestConfig("postgres")
	cfg.Database.SSLMode = "VERIFY-FULL"

	db, err := NewPostgresDB(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t,
		"host=localhost port=5432 user=trishul password=secret dbname=trishul sslmode=verify-full",
		db.DSN())
}

func TestPostgresDB_Ping(t *testing.T) {
	db, mock := newMockPostgres(t)

	mock.ExpectPing()
	assert.NoError(t, db.Ping())

	mock.ExpectPing().WillReturnError(assert.AnError)
	assert.Error(t, db.Ping())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDB_Transaction(t *testing.T) {
	db, mock := newMockPostgres(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := db.Transaction(func(tx *gorm.DB) error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDB_Close(t *testing.T) {
	db, mock := newMockPostgres(t)
	mock.ExpectClose()

	assert.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSSLMode(t *testing.T) {
	tests := map[string]string{
		"":            "disable",
		"disable":     "disable",
		"require":     "require",
		"Verify-CA":   "verify-ca",
		"verify-full": "verify-full",
		"prefer":      "disable",
	}
	for input, want := range tests {
		assert.Equal(t, want, sslMode(input), "mode %q", input)
	}
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Info, gormLogLevel("debug"))
	assert.Equal(t, logger.Info, gormLogLevel("TRACE"))
	assert.Equal(t, logger.Warn, gormLogLevel("info"))
	assert.Equal(t, logger.Warn, gormLogLevel("warning"))
	assert.Equal(t, logger.Error, gormLogLevel("error"))
	assert.Equal(t, logger.Silent, gormLogLevel("quiet"))
}

func TestLogWriter(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)

	newLogWriter(log).Printf("SELECT %d", 1)
	assert.Contains(t, buf.String(), "SELECT 1")
	assert.Contains(t, buf.String(), "component=gorm")

	assert.NotPanics(t, func() { newLogWriter(nil).Printf("ignored") })
}
