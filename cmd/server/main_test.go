package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trishulai/trishul-api/internal/config"
	"github.com/trishulai/trishul-api/internal/database"
	"github.com/trishulai/trishul-api/internal/store"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	cfg.Server.Port = 0
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Mode = "test"
	cfg.Simulation.LatencyScale = 0
	cfg.Simulation.Seed = 7
	return cfg
}

func TestInitLogger(t *testing.T) {
	cfg := testConfig(t)
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	logger, file, err := initLogger(cfg)
	require.NoError(t, err)
	assert.Nil(t, file)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestInitLogger_InvalidLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Logging.Level = "chatty"
	cfg.Logging.Format = "text"

	logger, _, err := initLogger(cfg)
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func TestInitLogger_File(t *testing.T) {
	cfg := testConfig(t)
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "server.log")

	logger, file, err := initLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, file)
	defer file.Close()

	logger.Info("hello")
	data, err := os.ReadFile(cfg.Logging.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestNewApp_Memory(t *testing.T) {
	cfg := testConfig(t)
	logger, _ := test.NewNullLogger()

	a, err := newApp(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer a.close(context.Background())

	assert.Nil(t, a.db)
	require.NotNil(t, a.server)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/kavach/scans", nil)
	a.server.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SCN-")
}

func TestNewApp_Database(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Backend = store.BackendDatabase
	cfg.Database.Type = "sqlite"
	cfg.Database.SQLite.Path = database.MemoryPath
	logger, _ := test.NewNullLogger()

	a, err := newApp(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer a.close(context.Background())

	require.NotNil(t, a.db)
	assert.NoError(t, a.db.Ping())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	a.server.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"storage":"database"`)
}

func TestNewApp_UnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Backend = "redis"
	logger, _ := test.NewNullLogger()

	_, err := newApp(context.Background(), cfg, logger)
	assert.ErrorIs(t, err, store.ErrUnknownBackend)
}

func TestNewApp_ArchiveMisconfigured(t *testing.T) {
	cfg := testConfig(t)
	cfg.Archive.Enabled = true
	cfg.Archive.Endpoint = ""
	logger, _ := test.NewNullLogger()

	_, err := newApp(context.Background(), cfg, logger)
	assert.Error(t, err)
}

func TestApp_StartAndClose(t *testing.T) {
	cfg := testConfig(t)
	logger, _ := test.NewNullLogger()

	a, err := newApp(context.Background(), cfg, logger)
	require.NoError(t, err)
	require.NoError(t, a.server.Start())

	resp, err := http.Get("http://" + a.server.Addr() + "/api/v1/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.close(ctx)

	_, err = a.runner.Submit("noop", func(ctx context.Context) (interface{}, error) { return nil, nil })
	assert.Error(t, err)
}
