package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/fixware/repairdesk/internal/api/http"
	"github.com/fixware/repairdesk/internal/api/http/handlers"
	"github.com/fixware/repairdesk/internal/auth"
	"github.com/fixware/repairdesk/internal/config"
	"github.com/fixware/repairdesk/internal/events"
	"github.com/fixware/repairdesk/internal/observability"
	"github.com/fixware/repairdesk/internal/persistence"
	"github.com/fixware/repairdesk/internal/repository"
	"github.com/fixware/repairdesk/internal/service"
	"github.com/fixware/repairdesk/internal/store"
	"github.com/fixware/repairdesk/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	feed := store.NewRedisFeed(redis.Client)

	pool := pg.PoolHandle()
	var (
		requestRepo repository.ServiceRequestRepository
		userRepo    repository.UserProfileRepository
		accountRepo repository.AccountRepository
		adminRepo   repository.AdminRepository
		contentRepo repository.SiteContentRepository
	)
	if pool != nil {
		requestRepo = repository.NewServiceRequestRepository(pool)
		userRepo = repository.NewUserProfileRepository(pool)
		accountRepo = repository.NewAccountRepository(pool)
		adminRepo = repository.NewAdminRepository(pool)
		contentRepo = repository.NewSiteContentRepository(pool)
	}

	requestStore := store.NewRequestStore(requestRepo, feed, dispatcher, logger)
	directory := store.NewUserDirectory(userRepo, requestStore, feed, dispatcher, logger)

	if err := requestStore.Start(ctx); err != nil {
		logger.Fatal("failed to start request store", zap.Error(err))
	}
	defer requestStore.Stop()

	if err := directory.Start(ctx); err != nil {
		logger.Fatal("failed to start user directory", zap.Error(err))
	}
	defer directory.Stop()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo: accountRepo,
		AdminRepo:   adminRepo,
		Directory:   directory,
	})
	contentService := service.NewContentService(contentRepo, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), accountRepo, adminRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Accounts:       handlers.NewAccountsHandler(authService),
		Profile:        handlers.NewProfileHandler(directory),
		Requests:       handlers.NewRequestsHandler(requestStore),
		AdminRequests:  handlers.NewAdminRequestsHandler(requestStore),
		AdminUsers:     handlers.NewAdminUsersHandler(directory),
		Export:         handlers.NewExportHandler(requestStore, directory),
		Content:        handlers.NewContentHandler(contentService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
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
