package database

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// logWriter forwards gorm log lines to logrus at debug. gorm has already
// filtered them by its own level.
type logWriter struct {
	entry *logrus.Entry
}

func newLogWriter(log *logrus.Logger) logWriter {
	if log == nil {
		return logWriter{}
	}
	return logWriter{entry: log.WithField("component", "gorm")}
}

// Printf implements logger.Writer
func (w logWriter) Printf(format string, args ...interface{}) {
	if w.entry != nil {
		w.entry.Debugf(format, args...)
	}
}

func gormConfig(level string, log *logrus.Logger) *gorm.Config {
	return &gorm.Config{
		Logger: logger.New(newLogWriter(log), logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogLevel(level),
			IgnoreRecordNotFoundError: true,
		}),
	}
}

// gormLogLevel maps an application log level to gorm's. SQL statements are
// only logged at debug and trace.
func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug", "trace":
		return logger.Info
	case "info", "warn", "warning":
		return logger.Warn
	case "error", "fatal", "panic":
		return logger.Error
	default:
		return logger.Silent
	}
}
