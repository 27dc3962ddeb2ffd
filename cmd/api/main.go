package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/meals-service/internal/api/http"
	"github.com/spec-kit/meals-service/internal/api/http/handlers"
	"github.com/spec-kit/meals-service/internal/auth"
	"github.com/spec-kit/meals-service/internal/config"
	"github.com/spec-kit/meals-service/internal/events"
	"github.com/spec-kit/meals-service/internal/observability"
	"github.com/spec-kit/meals-service/internal/persistence"
	"github.com/spec-kit/meals-service/internal/ratelimit"
	"github.com/spec-kit/meals-service/internal/repository"
	"github.com/spec-kit/meals-service/internal/service"
	"github.com/spec-kit/meals-service/internal/worker"
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

	store, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongodb", zap.Error(err))
	}
	defer store.Close(ctx)

	if cfg.Mongo.EnsureIndexes {
		if err := store.EnsureIndexes(ctx, logger); err != nil {
			logger.Fatal("failed to ensure indexes", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	db := store.DatabaseHandle()
	userRepo := repository.NewUserRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	mealRepo := repository.NewMealRepository(db)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	sessions := auth.NewSessionManager(userRepo, cfg.Auth.SessionTTL())
	hasher := auth.NewHasher(cfg.Auth.PBKDF2Iterations)
	limiter := ratelimit.NewLimiter(redis.ClientHandle(), logger,
		cfg.Auth.LoginAttemptLimit, time.Duration(cfg.Auth.LoginWindowSec)*time.Second)

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo: userRepo,
		Sessions: sessions,
		Hasher:   hasher,
		Limiter:  limiter,
	})
	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo: requestRepo,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
	})
	mealService := service.NewMealService(service.MealDependencies{
		MealRepo:   mealRepo,
		Dispatcher: dispatcher,
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store, redis),
		Auth:              handlers.NewAuthHandler(authService, sessions),
		Requests:          handlers.NewRequestsHandler(requestService),
		Meals:             handlers.NewMealsHandler(mealService, sessions),
		Profile:           handlers.NewProfileHandler(authService),
		SessionMiddleware: auth.NewSessionMiddleware(sessions),
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
