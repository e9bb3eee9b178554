package main

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

	"storefront/cmd"
	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/auth"
	"storefront/internal/adapters/out/broker"
	"storefront/internal/adapters/out/cache"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, closer := logging.New(logging.Options{
		Level:    configs.LogLevel,
		FilePath: configs.LogFile,
		Service:  "storefront",
	})
	defer closer.Close()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configs, logger); err != nil {
		logger.Error("Storefront stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	idempotency, closeRedis, err := idempotencyStore(ctx, configs, logger)
	if err != nil {
		return err
	}
	defer closeRedis()

	app := cmd.NewCompositionRoot(gormDB, idempotency)

	if configs.SeedDemoData {
		if err := cmd.SeedDemoData(ctx, gormDB, app.UnitOfWorkFactory(), clock.NewSystem(), logger); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	if len(configs.KafkaBrokers) > 0 {
		publisher := broker.NewKafkaPublisher(configs.KafkaBrokers, configs.KafkaOrderEventsTopic)
		defer publisher.Close()

		jobManager, err := jobs.NewJobManager(
			app.CreateRelayOutboxCommandHandler(publisher), configs.OutboxBatchSize, logger)
		if err != nil {
			return err
		}
		if err := jobManager.StartAll(); err != nil {
			return err
		}
		defer jobManager.StopAll()
	} else {
		logger.WarnContext(ctx, "KAFKA_BROKERS not set, order events stay in the outbox")
	}

	return startWebServer(ctx, app, configs, logger, sqlDB.PingContext)
}

func idempotencyStore(ctx context.Context, configs cmd.Config, logger *slog.Logger) (ports.IdempotencyStore, func(), error) {
	if configs.RedisAddr == "" {
		logger.WarnContext(ctx, "REDIS_ADDR not set, idempotency keys are enforced by the database only")
		return nil, func() {}, nil
	}

	rdb, err := cache.NewClient(ctx, configs.RedisAddr, configs.RedisPassword)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	return cache.NewRedisIdempotencyStore(rdb, configs.IdempotencyTTL, configs.IdempotencyLockTTL), func() { _ = rdb.Close() }, nil
}

func startWebServer(
	ctx context.Context,
	app cmd.CompositionRoot,
	configs cmd.Config,
	logger *slog.Logger,
	ping func(context.Context) error,
) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := httpin.NewMetrics(registry)

	gateway := auth.NewJWTGateway(auth.Config{
		Secret:   []byte(configs.AdminJWTSecret),
		Issuer:   configs.AdminJWTIssuer,
		Audience: configs.AdminJWTAudience,
		Leeway:   30 * time.Second,
	})

	e, err := httpin.NewRouter(httpin.RouterConfig{
		Server:   httpin.NewServer(app.HTTPHandlers(), metrics),
		Gateway:  gateway,
		Logger:   logger,
		Metrics:  metrics,
		Gatherer: registry,
		HealthCheck: func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			return ping(pingCtx)
		},
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "HTTP server listening", "port", configs.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
