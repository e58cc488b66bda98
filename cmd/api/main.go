package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/matchday-travel/lead-service/internal/api/http"
	"github.com/matchday-travel/lead-service/internal/api/http/handlers"
	"github.com/matchday-travel/lead-service/internal/auth"
	"github.com/matchday-travel/lead-service/internal/cache"
	"github.com/matchday-travel/lead-service/internal/config"
	"github.com/matchday-travel/lead-service/internal/events"
	"github.com/matchday-travel/lead-service/internal/observability"
	"github.com/matchday-travel/lead-service/internal/persistence"
	"github.com/matchday-travel/lead-service/internal/repository"
	"github.com/matchday-travel/lead-service/internal/service"
	"github.com/matchday-travel/lead-service/internal/worker"
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

	pool := pg.PoolHandle()
	eventRepo := repository.NewEventRepository(pool)
	packageRepo := repository.NewPackageRepository(pool)
	leadRepo := repository.NewLeadRepository(pool)
	historyRepo := repository.NewLeadHistoryRepository(pool)
	quoteRepo := repository.NewQuoteRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	var eventCache *cache.EventCache
	if !cfg.Redis.CacheDisabled {
		eventCache = cache.NewEventCache(redis.Client, cfg.Redis.EventTTL())
	}

	leadService := service.NewLeadService(leadRepo, historyRepo, eventRepo, dispatcher)
	quoteService := service.NewQuoteService(quoteRepo, leadRepo, packageRepo, dispatcher)
	eventService := service.NewEventService(eventRepo, packageRepo, eventCache, logger)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authService := service.NewAuthService(staffRepo, tokenManager)
	authMiddleware := auth.NewMiddleware(tokenManager, staffRepo)

	notifier := service.NewNotificationService(cfg.Notification, logger)
	notificationWorker := worker.NewNotificationWorker(dispatcher, notifier, logger)
	notificationWorker.Start(ctx)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Leads:          handlers.NewLeadsHandler(leadService),
		Events:         handlers.NewEventsHandler(eventService),
		Quotes:         handlers.NewQuotesHandler(quoteService),
		Staff:          handlers.NewStaffHandler(authService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	cancel()
	notificationWorker.Wait()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
