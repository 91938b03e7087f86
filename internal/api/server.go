package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	apiJobs "github.com/trishulai/trishul-api/internal/api/jobs"
	apiKavach "github.com/trishulai/trishul-api/internal/api/kavach"
	apiRudra "github.com/trishulai/trishul-api/internal/api/rudra"
	apiTrinetra "github.com/trishulai/trishul-api/internal/api/trinetra"
	"github.com/trishulai/trishul-api/internal/config"
	"github.com/trishulai/trishul-api/internal/database"
	"github.com/trishulai/trishul-api/internal/middleware"
	"github.com/trishulai/trishul-api/internal/utils"
)

// Idle rate limiter entries are dropped after limiterIdle
const (
	limiterCleanupInterval = time.Minute
	limiterIdle            = 10 * time.Minute
)

// Server represents the API server
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	config     *config.Config
	logger     *logrus.Logger
	db         database.Database
	limiter    *utils.RateLimiter
	startedAt  time.Time
	addr       string

	stopCleanup chan struct{}
	stopOnce    sync.Once

	// API Controllers
	kavachController   *apiKavach.Controller
	rudraController    *apiRudra.Controller
	trinetraController *apiTrinetra.Controller
	jobsController     *apiJobs.Controller
}

// ServerConfig contains the configuration for the API server
type ServerConfig struct {
	Config   *config.Config
	Logger   *logrus.Logger
	DB       database.Database // Optional, pinged by the health check when set
	Kavach   apiKavach.Service
	Rudra    apiRudra.Service
	Trinetra apiTrinetra.Service
	Jobs     apiJobs.Runner
}

// NewServer creates a new API server with all routes registered
func NewServer(cfg *ServerConfig) (*Server, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, errors.New("config is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.Kavach == nil {
		return nil, errors.New("kavach service is required")
	}
	if cfg.Rudra == nil {
		return nil, errors.New("rudra service is required")
	}
	if cfg.Trinetra == nil {
		return nil, errors.New("trinetra service is required")
	}
	if cfg.Jobs == nil {
		return nil, errors.New("job runner is required")
	}

	server := &Server{
		config:      cfg.Config,
		logger:      cfg.Logger,
		db:          cfg.DB,
		startedAt:   time.Now(),
		stopCleanup: make(chan struct{}),
	}

	rl := cfg.Config.Security.RateLimiting
	if rl.Enabled {
		server.limiter = utils.NewRateLimiter(rl.ScanStartPerMinute, rl.Burst)
	}

	maxUpload := cfg.Config.Server.MaxUploadSize
	server.kavachController = apiKavach.NewController(cfg.Kavach, cfg.Logger, maxUpload)
	server.rudraController = apiRudra.NewController(cfg.Rudra, cfg.Logger)
	server.trinetraController = apiTrinetra.NewController(cfg.Trinetra, cfg.Logger, maxUpload)
	server.jobsController = apiJobs.NewController(cfg.Jobs, cfg.Kavach, cfg.Trinetra, cfg.Logger, apiJobs.Options{
		MaxUploadSize: maxUpload,
		CheckOrigin:   middleware.OriginChecker(cfg.Config.CORS.AllowOrigins),
	})

	// Set Gin mode based on environment
	switch server.config.Server.Mode {
	case "release", "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	utils.RegisterJSONTagNames()

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Config.Security.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	if maxUpload > 0 {
		router.MaxMultipartMemory = maxUpload
	}

	loggingMW := middleware.NewLoggingMiddleware(server.logger, middleware.WithSkipPaths("/api/v1/health"))
	recoveryMW := middleware.NewRecoveryMiddleware(server.logger)

	router.Use(middleware.RequestID())
	router.Use(loggingMW.Logger())
	router.Use(recoveryMW.Recovery())
	router.Use(middleware.CORSWithConfig(middleware.CORSConfigFrom(cfg.Config)))

	server.router = router
	server.RegisterRoutes()

	server.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", server.config.Server.Host, server.config.Server.Port),
		Handler:           server.router,
		ReadTimeout:       server.config.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      server.config.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	return server, nil
}

// Start binds the listen address and serves requests in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.addr = ln.Addr().String()

	if s.limiter != nil {
		go s.cleanupLimiter()
	}

	go func() {
		s.logger.WithField("address", s.addr).Info("Starting API server")
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithError(err).Error("API server error")
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the API server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")
	s.stopOnce.Do(func() { close(s.stopCleanup) })

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	s.logger.Info("API server shutdown complete")
	return nil
}

// Router returns the Gin router instance
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Addr returns the address the server listens on once started
func (s *Server) Addr() string {
	return s.addr
}

func (s *Server) cleanupLimiter() {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.limiter.Cleanup(limiterIdle)
		case <-s.stopCleanup:
			return
		}
	}
}
