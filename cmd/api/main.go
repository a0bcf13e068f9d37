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

	httptransport "github.com/spec-kit/spoc-booking/internal/api/http"
	"github.com/spec-kit/spoc-booking/internal/api/http/handlers"
	"github.com/spec-kit/spoc-booking/internal/config"
	"github.com/spec-kit/spoc-booking/internal/events"
	"github.com/spec-kit/spoc-booking/internal/meeting"
	"github.com/spec-kit/spoc-booking/internal/observability"
	"github.com/spec-kit/spoc-booking/internal/persistence"
	"github.com/spec-kit/spoc-booking/internal/repository"
	"github.com/spec-kit/spoc-booking/internal/service"
	"github.com/spec-kit/spoc-booking/internal/worker"
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

	var (
		spocRepo    repository.SpocRepository
		slotRepo    repository.SlotRepository
		clientRepo  repository.ClientRepository
		bookingRepo repository.BookingRepository
	)
	demoMode := pg.PoolHandle() == nil
	if demoMode {
		mem := repository.NewMemoryRepositories(time.Now())
		spocRepo = mem.Spocs
		slotRepo = mem.Slots
		clientRepo = mem.Clients
		bookingRepo = mem.Bookings
	} else {
		pool := pg.PoolHandle()
		spocRepo = repository.NewSpocRepository(pool)
		slotRepo = repository.NewSlotRepository(pool)
		clientRepo = repository.NewClientRepository(pool)
		bookingRepo = repository.NewBookingRepository(pool)
	}

	dispatcher := events.NewInMemoryDispatcher()
	linkBuilder := meeting.NewLinkBuilder(cfg.Meeting)

	spocService := service.NewSpocService(service.SpocDependencies{
		SpocRepo: spocRepo,
		SlotRepo: slotRepo,
		Cache:    redis,
		Logger:   logger,
	})
	clientService := service.NewClientService(service.ClientDependencies{
		ClientRepo: clientRepo,
		Dispatcher: dispatcher,
	})
	bookingService := service.NewBookingService(service.BookingDependencies{
		BookingRepo: bookingRepo,
		SlotRepo:    slotRepo,
		SpocRepo:    spocRepo,
		ClientRepo:  clientRepo,
		LinkBuilder: linkBuilder,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Demo:     handlers.NewDemoHandler(spocRepo, slotRepo, clientRepo, bookingRepo, demoMode),
		Spocs:    handlers.NewSpocsHandler(spocService),
		Clients:  handlers.NewClientsHandler(clientService),
		Bookings: handlers.NewBookingsHandler(bookingService),
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
