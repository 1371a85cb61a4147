package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/appogelardexa/ticket-triage/internal/api/http"
	"github.com/appogelardexa/ticket-triage/internal/api/http/handlers"
	"github.com/appogelardexa/ticket-triage/internal/auth"
	"github.com/appogelardexa/ticket-triage/internal/config"
	"github.com/appogelardexa/ticket-triage/internal/events"
	"github.com/appogelardexa/ticket-triage/internal/observability"
	"github.com/appogelardexa/ticket-triage/internal/persistence"
	"github.com/appogelardexa/ticket-triage/internal/repository"
	"github.com/appogelardexa/ticket-triage/internal/service"
	"github.com/appogelardexa/ticket-triage/internal/worker"
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

	pool := pg.PoolHandle()
	if pool != nil && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	var (
		ticketRepo     repository.TicketRepository
		viewRepo       repository.TicketViewRepository
		transitionRepo repository.TransitionRepository
		clientRepo     repository.ClientRepository
		staffRepo      repository.StaffRepository
		departmentRepo repository.DepartmentRepository
		categoryRepo   repository.CategoryRepository
		companyRepo    repository.CompanyRepository
		jobRepo        repository.IntakeJobRepository
	)

	var redis *persistence.Redis

	if pool != nil {
		ticketRepo = repository.NewTicketRepository(pool)
		viewRepo = repository.NewTicketViewRepository(pool)
		transitionRepo = repository.NewTransitionRepository(pool)
		clientRepo = repository.NewClientRepository(pool)
		staffRepo = repository.NewStaffRepository(pool)
		departmentRepo = repository.NewDepartmentRepository(pool)
		categoryRepo = repository.NewCategoryRepository(pool)
		companyRepo = repository.NewCompanyRepository(pool)

		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		jobRepo = repository.NewRedisJobRepository(redis.Client)
	} else {
		store := repository.NewMemoryStore()
		ticketRepo = store
		viewRepo = store
		transitionRepo = store
		clientRepo = store.Clients()
		staffRepo = store.Staff()
		departmentRepo = store.Departments()
		categoryRepo = store.Categories()
		companyRepo = store.Companies()
		jobRepo = store.Jobs()
	}

	dispatcher := events.NewInMemoryDispatcher()

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:     ticketRepo,
		ViewRepo:       viewRepo,
		TransitionRepo: transitionRepo,
		ClientRepo:     clientRepo,
		StaffRepo:      staffRepo,
		DepartmentRepo: departmentRepo,
		CategoryRepo:   categoryRepo,
		Dispatcher:     dispatcher,
	})
	intakeService := service.NewIntakeService(jobRepo, ticketService, dispatcher, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService, err := service.NewAuthService(*cfg)
	if err != nil {
		logger.Fatal("failed to init auth", zap.Error(err))
	}
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:    handlers.NewAuthHandler(authService),
		Tickets: handlers.NewTicketsHandler(ticketService),
		History: handlers.NewHistoryHandler(ticketService),
		Intake:  handlers.NewIntakeHandler(intakeService, ticketService, logger),
		Lookups: handlers.NewLookupsHandler(handlers.LookupDependencies{
			ClientRepo:     clientRepo,
			StaffRepo:      staffRepo,
			DepartmentRepo: departmentRepo,
			CategoryRepo:   categoryRepo,
			CompanyRepo:    companyRepo,
		}),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
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
