package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/mmcomponents/gateway-service/internal/config"
	"github.com/mmcomponents/gateway-service/internal/credentials"
	"github.com/mmcomponents/gateway-service/internal/domain"
	"github.com/mmcomponents/gateway-service/internal/middleware"
	"github.com/mmcomponents/gateway-service/internal/module/auth"
	"github.com/mmcomponents/gateway-service/internal/module/permission"
	"github.com/mmcomponents/gateway-service/internal/pkg"
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine *gin.Engine
	db     *gorm.DB
	logger *logger.Logger
	cfg    *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, the database, the credential provider, the module
// registry, middleware, and routes.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	// 1. Logger.
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	// 2. Database with connection pool settings.
	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	defer func() {
		if success {
			return
		}
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("database close error", slog.Any("error", err))
			}
		}
	}()

	// 3. AutoMigrate in debug mode only.
	if cfg.Server.Mode == gin.DebugMode {
		if err := db.AutoMigrate(&domain.Permission{}); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("auto migration completed")
	}

	// 4. Credential provider, initialized once and passed by handle.
	var provider *credentials.Provider
	if cfg.Credentials.Enabled {
		ttl, err := time.ParseDuration(cfg.Credentials.TokenTTL)
		if err != nil {
			return nil, fmt.Errorf("parse credentials token ttl: %w", err)
		}
		provider, err = credentials.Load(cfg.Credentials.ServiceAccount, ttl)
		if err != nil {
			return nil, fmt.Errorf("load credentials: %w", err)
		}
		log.Info("credential provider loaded", slog.String("project", provider.ProjectID()))
	}

	// 5. Manual dependency injection: repository → service → handler.
	pageDefaults := pkg.PageDefaults{
		PageSize:    cfg.Pagination.DefaultPageSize,
		PageNumber:  cfg.Pagination.DefaultPageNumber,
		MaxPageSize: cfg.Pagination.MaxPageSize,
	}
	permRepo := permission.NewPermissionRepository(db)
	permSvc := permission.NewPermissionService(permRepo)
	permHandler := permission.NewPermissionHandler(permSvc, pageDefaults)
	authHandler := auth.NewHandler(provider)

	// 6. Gin engine with custom middleware (not gin.Default()).
	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	corsConfig := resolveCORSConfig(cfg.Server.Mode, cfg.Server.CORS.AllowOrigins)

	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			TrustUpstream: false,
		}),
		middleware.Logger(log.Logger),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig),
	)

	// 7. Explicit module registry. New resource modules are added here.
	modules := []Module{
		permission.NewModule(permHandler),
		auth.NewModule(authHandler),
	}

	if err := RegisterRoutes(engine, &RouteDeps{
		Modules: modules,
		DB:      db,
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	success = true
	return &App{
		engine: engine,
		db:     db,
		logger: log,
		cfg:    cfg,
	}, nil
}

func resolveCORSConfig(mode string, configuredAllowOrigins []string) middleware.CORSConfig {
	corsConfig := middleware.DefaultCORSConfig()

	if len(configuredAllowOrigins) > 0 {
		corsConfig.AllowOrigins = configuredAllowOrigins
		return corsConfig
	}

	// In release mode with no allowlist, deny cross-origin requests.
	if mode == gin.ReleaseMode {
		corsConfig.AllowOrigins = []string{}
	}

	return corsConfig
}

func validateGinMode(mode string) error {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return nil
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
// It performs graceful shutdown with a 5-second deadline and closes the
// database connection and logger.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine)

	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if runErr == nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("server shutdown error", slog.Any("error", err))
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				a.logger.Error("database close error", slog.Any("error", err))
			} else {
				a.logger.Info("database connection closed")
			}
		}
	}

	a.logger.Info("server stopped")
	if err := a.logger.Close(); err != nil {
		slog.Error("logger close error", slog.Any("error", err))
	}

	return runErr
}
