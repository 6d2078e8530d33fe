package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/blog-gateway/internal/api/http"
	"github.com/spec-kit/blog-gateway/internal/api/http/handlers"
	"github.com/spec-kit/blog-gateway/internal/auth"
	"github.com/spec-kit/blog-gateway/internal/config"
	"github.com/spec-kit/blog-gateway/internal/events"
	"github.com/spec-kit/blog-gateway/internal/observability"
	"github.com/spec-kit/blog-gateway/internal/persistence"
	"github.com/spec-kit/blog-gateway/internal/repository"
	"github.com/spec-kit/blog-gateway/internal/service"
	"github.com/spec-kit/blog-gateway/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if !cfg.Auth.SeparateSecrets() {
		logger.Warn("AUTH_TOKEN_SECRET not set; signing tokens with the admin secret")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	driver, dsn, err := persistence.ParseStoreURI(cfg.Store.URI)
	if err != nil {
		logger.Fatal("invalid content store uri", zap.Error(err))
	}

	var (
		store    handlers.Pinger
		postRepo repository.PostRepository
	)
	switch driver {
	case persistence.DriverPostgres:
		pg, err := persistence.NewPostgres(ctx, dsn, cfg.Store, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()

		if cfg.Store.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), persistence.MigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		store = pg
		postRepo = repository.NewPostgresPostRepository(pg.PoolHandle())
	case persistence.DriverSQLite:
		lite, err := persistence.NewSQLite(ctx, dsn, logger)
		if err != nil {
			logger.Fatal("failed to open sqlite", zap.Error(err))
		}
		defer lite.Close()

		store = lite
		postRepo = repository.NewSQLitePostRepository(lite.DB)
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()
	postRepo = repository.NewCachedPostRepository(postRepo, redis.ClientHandle(), cfg.Redis.CacheTTL(), logger)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification))

	authService, err := service.NewAuthService(cfg.Auth)
	if err != nil {
		logger.Fatal("failed to init auth", zap.Error(err))
	}
	blogService := service.NewBlogService(service.BlogDependencies{
		PostRepo:   postRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:         logger,
		Metrics:        metrics,
		RequestTimeout: cfg.App.RequestTimeout(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(store, redis, metrics, logger),
		Auth:           handlers.NewAuthHandler(authService),
		Blogs:          handlers.NewBlogsHandler(blogService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("store", string(driver)))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
