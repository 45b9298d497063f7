package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	apihttp "github.com/deskfolio/deskos/internal/api/http"
	"github.com/deskfolio/deskos/internal/api/middleware"
	"github.com/deskfolio/deskos/internal/api/ws"
	"github.com/deskfolio/deskos/internal/domain/content"
	"github.com/deskfolio/deskos/internal/domain/desktop"
	"github.com/deskfolio/deskos/internal/domain/registry"
	"github.com/deskfolio/deskos/internal/domain/search"
	"github.com/deskfolio/deskos/internal/domain/session"
	"github.com/deskfolio/deskos/internal/infrastructure/config"
	"github.com/deskfolio/deskos/internal/infrastructure/logging"
	"github.com/deskfolio/deskos/internal/infrastructure/monitoring"
	"github.com/deskfolio/deskos/internal/providers/contact"
	"github.com/deskfolio/deskos/internal/providers/storage"
	"github.com/deskfolio/deskos/internal/shared/types"
)

const (
	seedTimeout       = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 2 * time.Minute
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	http    *http.Server
	hub     *desktop.Hub
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return newServer(cfg, logger)
}

func newServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info("Initializing deskos server",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("storage", cfg.Storage.Driver),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()

	kv, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	reg := registry.NewDefault().WithMetrics(metrics)
	if cfg.Catalog.Dir != "" {
		ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
		loaded, failed, err := registry.NewSeeder(reg, cfg.Catalog.Dir, logger.Component("seeder")).Seed(ctx)
		cancel()
		if err != nil {
			logger.Warn("Failed to seed app catalog", zap.String("dir", cfg.Catalog.Dir), zap.Error(err))
		} else {
			logger.Info("Seeded app catalog", zap.Int("loaded", loaded), zap.Int("failed", failed))
		}
	}

	cat := content.Default()
	if cfg.Catalog.ContentFile != "" {
		loaded, err := content.LoadFile(cfg.Catalog.ContentFile)
		if err != nil {
			logger.Warn("Failed to load portfolio content, using defaults", zap.Error(err))
		} else {
			cat = loaded
		}
	}

	var resume *content.Resume
	if cfg.Catalog.ResumeFile != "" {
		resume, err = content.LoadResume(cfg.Catalog.ResumeFile)
		if err != nil {
			logger.Warn("Failed to load resume", zap.Error(err))
		}
	}

	index := search.NewIndex(reg, cat).WithMetrics(metrics)

	relay := contact.NewRelay(contact.Config{
		URL:     cfg.Contact.RelayURL,
		Timeout: cfg.Contact.Timeout,
	}, logger.Component("contact")).WithMetrics(metrics)
	if !relay.Configured() {
		logger.Warn("Contact relay not configured, submissions will fail")
	}

	hub := desktop.NewHub(desktop.HubConfig{
		Shell: desktop.Config{
			Viewport: types.Viewport{Width: cfg.Desktop.ViewportWidth, Height: cfg.Desktop.ViewportHeight},
			Session: session.Config{
				BootDuration:     cfg.Desktop.BootDuration,
				ShutdownDuration: cfg.Desktop.ShutdownDuration,
			},
		},
		MaxDesktops: cfg.Desktop.MaxDesktops,
	}, desktop.Deps{
		Registry: reg,
		Search:   index,
		Views:    desktop.DefaultViews(reg.List()),
		Storage:  kv,
		Metrics:  metrics,
		Log:      logger.Component("desktop"),
	})

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(logger.Component("http")))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	handlers := apihttp.NewHandlers(apihttp.Deps{
		Hub:      hub,
		Registry: reg,
		Search:   index,
		Content:  cat,
		Resume:   resume,
		Relay:    relay,
		Metrics:  metrics,
		Log:      logger.Component("api"),
	})
	handlers.Register(router)

	wsHandler := ws.NewHandler(hub, ws.DefaultConfig(), logger.Component("ws")).WithMetrics(metrics)
	router.GET("/desktops/:id/stream", wsHandler.HandleConnection)

	s := &Server{
		router:  router,
		hub:     hub,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}
	s.http = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}

	logger.Info("Server initialized successfully", zap.Int("apps", reg.Len()))
	return s, nil
}

// Handler returns the router wrapped with response compression
func (s *Server) Handler() http.Handler {
	return gzhttp.GzipHandler(s.router)
}

// Hub returns the desktop hub
func (s *Server) Hub() *desktop.Hub {
	return s.hub
}

// Run starts the HTTP server and blocks until it stops. A graceful
// Shutdown makes Run return nil.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires and tears down every desktop
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	err := s.http.Shutdown(ctx)
	if err != nil {
		s.logger.Error("HTTP shutdown incomplete", zap.Error(err))
	}

	s.hub.Close()
	s.logger.Info("Closed desktops")

	// Sync logger before exit
	_ = s.logger.Sync()
	return err
}
