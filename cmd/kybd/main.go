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

	"go.opentelemetry.io/otel"

	"github.com/bibbank/kyb-service/internal/application/usecase"
	"github.com/bibbank/kyb-service/internal/domain/service"
	"github.com/bibbank/kyb-service/internal/infrastructure/config"
	"github.com/bibbank/kyb-service/internal/infrastructure/kafka"
	"github.com/bibbank/kyb-service/internal/infrastructure/metrics"
	"github.com/bibbank/kyb-service/internal/infrastructure/postgres"
	"github.com/bibbank/kyb-service/internal/infrastructure/referencelist"
	"github.com/bibbank/kyb-service/internal/infrastructure/scheduler"
	grpcpresentation "github.com/bibbank/kyb-service/internal/presentation/grpc"
	"github.com/bibbank/kyb-service/internal/presentation/rest"
	"github.com/bibbank/kyb-service/pkg/auth"
	"github.com/bibbank/kyb-service/pkg/events"
	pkgkafka "github.com/bibbank/kyb-service/pkg/kafka"
	"github.com/bibbank/kyb-service/pkg/observability"
	pgpkg "github.com/bibbank/kyb-service/pkg/postgres"
)

func main() {
	if err := run(); err != nil {
		slog.Error("kyb-service failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: cfg.Telemetry.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("starting kyb-service",
		slog.Int("http_port", cfg.HTTPPort),
		slog.Int("grpc_port", cfg.GRPCPort),
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Insecure:    cfg.Telemetry.OTLPInsecure,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", slog.String("error", err.Error()))
	} else {
		defer func() {
			flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer flushCancel()
			if err := shutdownTracer(flushCtx); err != nil {
				logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			}
		}()
	}

	// Metrics: OTel instruments and native collectors share one registry.
	telemetry, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.Telemetry.ServiceName})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	otel.SetMeterProvider(telemetry.Provider)
	defer func() {
		if err := telemetry.Provider.Shutdown(context.Background()); err != nil {
			logger.Error("meter provider shutdown error", slog.String("error", err.Error()))
		}
	}()
	decisionMetrics := metrics.New(telemetry.Registry)

	// Database connection and migrations.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := cfg.Postgres()
	pool, err := pgpkg.NewPool(dbCtx, pgCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pgpkg.RunMigrations(pgCfg.DSN(), "file://"+cfg.MigrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("database migrations applied")

	// Reference lists with hot reload.
	lists, err := referencelist.Load(cfg.Screening.ReferenceListFile, logger)
	if err != nil {
		return fmt.Errorf("failed to load reference lists: %w", err)
	}
	decisionMetrics.SetReferenceListSizes(lists.Counts())
	lists.OnChange(decisionMetrics.SetReferenceListSizes)
	stopWatch, err := lists.Watch()
	if err != nil {
		return fmt.Errorf("failed to watch reference lists: %w", err)
	}
	defer stopWatch()

	// Kafka producer for the outbox relay.
	producer, err := pkgkafka.NewProducer(cfg.KafkaClient())
	if err != nil {
		return fmt.Errorf("failed to create kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}()

	// Wire infrastructure adapters.
	merchantRepo := postgres.NewMerchantRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	publisher := kafka.NewPublisher(producer, cfg.Kafka.EventsTopic, logger)
	relay := events.NewRelay(outboxRepo, publisher, cfg.Outbox.BatchSize)

	// Wire domain services.
	scorer := service.NewRiskScorer(service.DefaultRiskWeights())
	screener := service.NewScreener(lists)
	policy := service.NewDecisionPolicy()

	// Wire use cases.
	rescreenMerchant := usecase.NewRescreenMerchant(merchantRepo, screener, decisionMetrics, logger)
	rescreenAll := usecase.NewRescreenAll(merchantRepo, rescreenMerchant, decisionMetrics, logger)
	useCases := grpcpresentation.UseCases{
		Register:          usecase.NewRegisterMerchant(merchantRepo, scorer, screener, policy, decisionMetrics, logger),
		GetMerchant:       usecase.NewGetMerchant(merchantRepo),
		GetMerchantStatus: usecase.NewGetMerchantStatus(merchantRepo),
		Review:            usecase.NewReviewMerchant(merchantRepo, logger),
		MarkUnderReview:   usecase.NewMarkUnderReview(merchantRepo),
		VerifyDocument:    usecase.NewVerifyDocument(merchantRepo),
		Rescreen:          rescreenMerchant,
		ScreenName:        usecase.NewScreenName(screener, decisionMetrics),
		Dashboard:         usecase.NewGetDashboard(merchantRepo),
	}

	// Background jobs.
	jobs := scheduler.New(scheduler.Config{
		RescreenInterval: cfg.Screening.RescreenInterval,
		RescreenPageSize: cfg.Screening.RescreenPageSize,
		RelayInterval:    cfg.Outbox.RelayInterval,
	}, rescreenAll, relay, logger)
	if err := jobs.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer jobs.Stop()

	errCh := make(chan error, 3)

	if cfg.Kafka.ConsumeEnabled {
		handler := kafka.NewRescreenHandler(rescreenMerchant, rescreenAll, logger)
		consumer, err := kafka.NewRescreenConsumer(cfg.KafkaClient(), cfg.Kafka.RescreenTopic, handler, logger)
		if err != nil {
			return err
		}
		defer consumer.Close()
		go func() {
			if err := consumer.Start(ctx); err != nil {
				errCh <- fmt.Errorf("rescreen consumer error: %w", err)
			}
		}()
	}

	// JWT validation.
	jwtSvc, err := newJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	// gRPC server.
	grpcHandler := grpcpresentation.NewKYBServiceHandler(useCases, logger)
	grpcServer, err := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		Address:      cfg.GRPCAddress(),
		CertFile:     cfg.TLS.CertFile,
		KeyFile:      cfg.TLS.KeyFile,
		ClientCAFile: cfg.TLS.ClientCAFile,
		Reflection:   cfg.GRPCReflection,
	}, logger, jwtSvc, telemetry.Provider)
	if err != nil {
		return err
	}

	// HTTP server (health checks and metrics).
	healthHandler := rest.NewHealthHandler(logger, map[string]rest.ReadinessCheck{
		"database": rest.DatabaseCheck(pool),
	}, telemetry.Handler)
	httpMux := http.NewServeMux()
	healthHandler.RegisterRoutes(httpMux)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      rest.RequestLogger(logger, httpMux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", slog.String("address", cfg.HTTPAddress()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("kyb-service started",
		slog.String("grpc_address", cfg.GRPCAddress()),
		slog.String("http_address", cfg.HTTPAddress()),
	)

	// Wait for shutdown signal.
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
		logger.Error("server error", slog.String("error", runErr.Error()))
	}

	// Graceful shutdown.
	logger.Info("shutting down kyb-service")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("kyb-service stopped")
	return runErr
}

func newJWTService(cfg config.AuthConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer, Leeway: cfg.JWTLeeway}
	if cfg.JWTPublicKeyFile != "" {
		pem, err := auth.LoadKeyFromFile(cfg.JWTPublicKeyFile)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = string(pem)
	}
	return auth.NewJWTService(jwtCfg)
}
