package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/plantops/greenops/internal/adapter/cache"
	"github.com/plantops/greenops/internal/adapter/http/fiber/handlers"
	"github.com/plantops/greenops/internal/adapter/http/fiber/middleware"
	"github.com/plantops/greenops/internal/adapter/ml"
	"github.com/plantops/greenops/internal/adapter/queue"
	"github.com/plantops/greenops/internal/adapter/storage/csvfile"
	"github.com/plantops/greenops/internal/adapter/storage/postgres"
	"github.com/plantops/greenops/internal/domain"
	"github.com/plantops/greenops/internal/observability/telemetry"
	"github.com/plantops/greenops/internal/ports"
	"github.com/plantops/greenops/internal/service/admin"
	"github.com/plantops/greenops/internal/service/analytics"
	"github.com/plantops/greenops/internal/service/email"
	"github.com/plantops/greenops/internal/service/health"
	"github.com/plantops/greenops/internal/service/notify"
	"github.com/plantops/greenops/internal/service/remedy"
	"github.com/plantops/greenops/pkg/config"
)

const serviceName = "greenops"

func main() {
	// 1. Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// 2. Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Starting GreenOps",
		zap.String("service", serviceName),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// 3. Distributed tracing
	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(cfg.OpenTelemetry.ServiceName, cfg.App.Version, cfg.OpenTelemetry.JaegerEndpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 4. PostgreSQL
	db, err := postgres.NewConnection(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// 5. Cache: Redis, with an in-process fallback so the analytics API
	// stays up when Redis is absent.
	var appCache ports.Cache
	var redisConn *redis.Client
	if rc, err := cache.NewRedisCache(cfg.Redis.URL, logger); err != nil {
		logger.Warn("Redis unavailable, using local cache", zap.Error(err))
		appCache = cache.NewLocalCache(5*time.Minute, logger)
	} else {
		redisConn = rc.Client()
		appCache = rc
		defer rc.Close()
	}

	// 6. Message queue
	var messageQueue queue.MessageQueue
	var natsConn *nats.Conn
	switch cfg.Queue.Provider {
	case "rabbitmq":
		messageQueue, err = queue.NewRabbitMQQueue(cfg.Queue.RabbitMQURL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
	default:
		nq, err := queue.NewNATSQueue(cfg.Queue.NATSURL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		messageQueue = nq
		natsConn = nq.Conn()
	}
	defer messageQueue.Close()

	// 7. Repositories
	recordRepo := postgres.NewRecordRepository(db, logger)

	// 8. Outbound adapters
	mlClient := ml.NewClient(&ml.Config{
		BaseURL: cfg.ML.BaseURL,
		APIKey:  cfg.ML.APIKey,
		Timeout: cfg.ML.Timeout,
	}, logger)

	emailService, err := email.NewService(&email.Config{
		Provider:       cfg.Email.Provider,
		FromEmail:      cfg.Email.FromEmail,
		FromName:       cfg.Email.FromName,
		SendGridAPIKey: cfg.Email.SendGridAPIKey,
		SMTPHost:       cfg.Email.SMTPHost,
		SMTPPort:       cfg.Email.SMTPPort,
		SMTPUsername:   cfg.Email.SMTPUsername,
		SMTPPassword:   cfg.Email.SMTPPassword,
		SMTPUseTLS:     cfg.Email.SMTPUseTLS,
		BaseURL:        cfg.Email.BaseURL,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service", zap.Error(err))
	}

	// 9. Services
	configStore := admin.NewConfigStore(cfg.Analysis, logger)
	analyticsService := analytics.NewService(recordRepo, appCache, logger)
	notifier := notify.NewService(messageQueue, emailService, cfg.Email.Recipients, logger)
	remedyService := remedy.NewService(remedy.NewCounterGenerator(1000), notifier, logger)

	healthService := health.NewService(&health.Config{
		Version: cfg.App.Version,
		DB:      sqlDB,
		Redis:   redisConn,
		NATS:    natsConn,
		ML:      mlClient,
	}, logger)

	// 10. Seed the database from the CSV extract on first boot.
	if cfg.Ingest.CSVPath != "" {
		if err := seedFromCSV(context.Background(), recordRepo, cfg.Ingest.CSVPath, logger); err != nil {
			logger.Warn("CSV seed skipped", zap.String("path", cfg.Ingest.CSVPath), zap.Error(err))
		}
	}

	// 11. HTTP server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	}
	app.Use(middleware.CircuitBreaker(logger))

	health.NewFiberHandler(healthService).RegisterRoutes(app)

	if cfg.Prometheus.Enabled {
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
			handler(c.Context())
			return nil
		})
	}

	// API v1 routes
	v1 := app.Group("/api/v1")

	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, configStore, logger)
	v1.Get("/data", analyticsHandler.GetData)
	v1.Get("/kpis", analyticsHandler.GetKPIs)
	v1.Get("/anomalies", analyticsHandler.GetAnomalies)
	v1.Get("/actions", analyticsHandler.GetActions)
	v1.Get("/report", analyticsHandler.GetReport)
	v1.Get("/pipeline", analyticsHandler.RunPipeline)

	remedyHandler := handlers.NewRemedyHandler(remedyService, configStore, logger)
	v1.Post("/remedy/plan", remedyHandler.CreatePlan)
	v1.Post("/remedy/priorities", remedyHandler.RankPriorities)

	mlHandler := handlers.NewMLHandler(mlClient, analyticsService, configStore, logger)
	v1.Get("/ml/anomalies", mlHandler.DetectAnomalies)
	v1.Get("/ml/forecast", mlHandler.ForecastEnergy)
	v1.Get("/ml/compare", mlHandler.CompareDetectors)
	v1.Get("/ml/status", mlHandler.Status)

	adminHandler := handlers.NewAdminHandler(configStore, logger)
	v1.Get("/config", adminHandler.GetConfig)
	v1.Put("/config", middleware.AdminRequired(cfg.JWT.Secret), adminHandler.UpdateConfig)

	// 12. Serve
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 13. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// seedFromCSV loads the operational extract into Postgres when the table is
// still empty. Re-running it is safe: the repository skips duplicate rows.
func seedFromCSV(ctx context.Context, repo ports.RecordRepository, path string, logger *zap.Logger) error {
	existing, err := repo.Find(ctx, domain.RecordFilter{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	raw, err := csvfile.NewLoader(logger).LoadFile(path)
	if err != nil {
		return err
	}
	records, err := analytics.ValidateDataset(raw)
	if err != nil {
		return err
	}
	if err := repo.Save(ctx, records); err != nil {
		return err
	}

	logger.Info("Seeded operational records from CSV",
		zap.String("path", path),
		zap.Int("count", len(records)),
	)
	return nil
}
