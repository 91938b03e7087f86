package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DefaultEnvFiles are loaded by LoadDotEnv when no files are given.
// Earlier files win because godotenv never overrides variables already set.
var DefaultEnvFiles = []string{".env.local", ".env"}

// LoadDotEnv loads environment files into the process environment. Missing
// files are skipped; variables already present in the environment are kept.
// It returns the files that were loaded.
func LoadDotEnv(log *logrus.Logger, files ...string) ([]string, error) {
	if len(files) == 0 {
		files = DefaultEnvFiles
	}

	var loaded []string
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, err
		}
		loaded = append(loaded, file)
		if log != nil {
			log.WithField("file", file).Debug("Loaded environment file")
		}
	}
	return loaded, nil
}

// envKey returns the prefixed environment variable name for key
func envKey(key string) string {
	key = strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if strings.HasPrefix(key, EnvPrefix+"_") {
		return key
	}
	return EnvPrefix + "_" + key
}

// GetEnv returns the prefixed environment variable or a default value
func GetEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(envKey(key)); ok && value != "" {
		return value
	}
	return defaultValue
}

// GetEnvBool returns the prefixed environment variable as a bool or a default value
func GetEnvBool(key string, defaultValue bool) bool {
	value, ok := os.LookupEnv(envKey(key))
	if !ok {
		return defaultValue
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "on":
		return true
	case "no", "n", "off":
		return false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return b
}
