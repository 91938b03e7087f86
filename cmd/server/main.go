// @title Trishul AI API
// @version 1.0
// @description Mock backend for the Trishul AI console: Kavach vulnerability scans, Rudra cost forecasting and Trinetra defect inspection.

// @contact.name Trishul AI Support
// @contact.email support@trishul.ai

// @host localhost:8000
// @BasePath /api/v1
// @schemes http https

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/trishulai/trishul-api/internal/api"
	"github.com/trishulai/trishul-api/internal/archive"
	"github.com/trishulai/trishul-api/internal/config"
	"github.com/trishulai/trishul-api/internal/database"
	"github.com/trishulai/trishul-api/internal/database/repositories"
	"github.com/trishulai/trishul-api/internal/jobs"
	"github.com/trishulai/trishul-api/internal/kavach"
	"github.com/trishulai/trishul-api/internal/latency"
	"github.com/trishulai/trishul-api/internal/models"
	"github.com/trishulai/trishul-api/internal/random"
	"github.com/trishulai/trishul-api/internal/rudra"
	"github.com/trishulai/trishul-api/internal/store"
	"github.com/trishulai/trishul-api/internal/trinetra"
)

// Version information (will be set during build)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	fmt.Printf("Trishul API %s (%s) built on %s\n", Version, Commit, BuildDate)

	if err := run(); err != nil {
		logrus.WithError(err).Fatal("Server exited with error")
	}
}

func run() error {
	bootstrap := logrus.New()
	if _, err := config.LoadDotEnv(bootstrap); err != nil {
		return fmt.Errorf("failed to load environment files: %w", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, logFile, err := initLogger(cfg)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logger.WithFields(logrus.Fields{
		"version":    Version,
		"commit":     Commit,
		"build_date": BuildDate,
	}).Info("Starting Trishul API")
	logger.WithField("config", cfg.MaskSensitiveFields()).Debug("Loaded configuration")

	app, err := newApp(context.Background(), cfg, logger)
	if err != nil {
		return err
	}

	if err := app.server.Start(); err != nil {
		app.close(context.Background())
		return fmt.Errorf("failed to start API server: %w", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.WithField("signal", sig.String()).Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	app.close(ctx)
	logger.Info("Server shutdown complete")
	return nil
}

// initLogger configures the logger from cfg.Logging. The returned file is
// non-nil when logs go to a file and must be closed by the caller.
func initLogger(cfg *config.Config) (*logrus.Logger, *os.File, error) {
	logger := logrus.New()

	switch cfg.Logging.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		logger.WithError(err).Warn("Invalid log level, defaulting to info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Logging.File == "" {
		return logger, nil, nil
	}
	if err := config.EnsureFileDirectory(cfg.Logging.File); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(io.MultiWriter(os.Stdout, f))
	return logger, f, nil
}

// app holds the wired components of a running server
type app struct {
	logger *logrus.Logger
	db     database.Database
	runner *jobs.Runner
	server *api.Server
}

// newApp builds the stores, services, job runner and HTTP server described
// by cfg
func newApp(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*app, error) {
	a := &app{logger: logger}

	scans, qc, err := a.initStores(cfg)
	if err != nil {
		return nil, err
	}

	archiver, err := initArchiver(ctx, cfg, logger)
	if err != nil {
		a.close(ctx)
		return nil, err
	}

	rnd := random.New(cfg.Simulation.Seed)
	sleeper := latency.NewReal(cfg.Simulation.LatencyScale)

	kavachService, err := kavach.NewService(kavach.Config{
		Store:    scans,
		Sleeper:  sleeper,
		Random:   rnd,
		Archiver: archiver,
		Logger:   logger,
	})
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("failed to create scan service: %w", err)
	}
	trinetraService, err := trinetra.NewService(trinetra.Config{
		Store:   qc,
		Sleeper: sleeper,
		Random:  rnd,
		Logger:  logger,
	})
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("failed to create inspection service: %w", err)
	}
	rudraService := rudra.NewService(sleeper, logger)

	a.runner = jobs.NewRunner(jobs.Options{
		Workers:      cfg.Jobs.Workers,
		QueueSize:    cfg.Jobs.QueueSize,
		Retries:      cfg.Jobs.Retries,
		RetryBackoff: cfg.Jobs.RetryBackoff,
		Retention:    cfg.Jobs.Retention,
		Logger:       logger,
	})

	logger.WithFields(logrus.Fields{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Initializing API server")

	a.server, err = api.NewServer(&api.ServerConfig{
		Config:   cfg,
		Logger:   logger,
		DB:       a.db,
		Kavach:   kavachService,
		Rudra:    rudraService,
		Trinetra: trinetraService,
		Jobs:     a.runner,
	})
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("failed to create API server: %w", err)
	}
	return a, nil
}

func (a *app) initStores(cfg *config.Config) (store.ScanStore, store.QCStore, error) {
	switch cfg.Storage.Backend {
	case store.BackendMemory:
		var scans []models.ScanRecord
		var qc []models.QcHistoryEntry
		if cfg.Storage.Seed {
			scans, qc = store.SeedScans(), store.SeedQCHistory()
		}
		return store.NewMemoryScanStore(scans), store.NewMemoryQCStore(qc), nil
	case store.BackendDatabase:
		db, err := database.Open(cfg, a.logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.db = db
		return repositories.NewGormScanRepository(db.DB()), repositories.NewGormQCRepository(db.DB()), nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", store.ErrUnknownBackend, cfg.Storage.Backend)
	}
}

func initArchiver(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (archive.Archiver, error) {
	if !cfg.Archive.Enabled {
		return archive.Noop{}, nil
	}

	a, err := archive.NewMinio(archive.MinioConfig{
		Endpoint:  cfg.Archive.Endpoint,
		AccessKey: cfg.Archive.AccessKey,
		SecretKey: cfg.Archive.SecretKey,
		Bucket:    cfg.Archive.Bucket,
		Region:    cfg.Archive.Region,
		UseSSL:    cfg.Archive.UseSSL,
		Prefix:    cfg.Archive.Prefix,
	}, logger)
	if err != nil {
		return nil, err
	}
	if err := a.EnsureBucket(ctx, cfg.Archive.Region); err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"endpoint": cfg.Archive.Endpoint,
		"bucket":   cfg.Archive.Bucket,
	}).Info("Report archiving enabled")
	return a, nil
}

// close stops the server, then the job runner, then the database
func (a *app) close(ctx context.Context) {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			a.logger.WithError(err).Error("Failed to shut down API server")
		}
	}
	if a.runner != nil {
		if err := a.runner.Shutdown(ctx); err != nil {
			a.logger.WithError(err).Error("Failed to shut down job runner")
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.WithError(err).Error("Failed to close database")
		}
	}
}
