package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finncap/origination/pkg/auth"
	"github.com/finncap/origination/pkg/kafka"
	"github.com/finncap/origination/pkg/observability"
	"github.com/finncap/origination/pkg/postgres"

	"github.com/finncap/origination/internal/application/usecase"
	"github.com/finncap/origination/internal/domain/port"
	"github.com/finncap/origination/internal/domain/service"
	"github.com/finncap/origination/internal/infrastructure/adapter"
	"github.com/finncap/origination/internal/infrastructure/config"
	"github.com/finncap/origination/internal/infrastructure/messaging"
	"github.com/finncap/origination/internal/infrastructure/notify"
	infraPostgres "github.com/finncap/origination/internal/infrastructure/persistence/postgres"
	"github.com/finncap/origination/internal/infrastructure/render"
	"github.com/finncap/origination/internal/infrastructure/storage"
	"github.com/finncap/origination/internal/infrastructure/textgen"
	grpcPresentation "github.com/finncap/origination/internal/presentation/grpc"
	"github.com/finncap/origination/internal/presentation/rest"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "originationd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Initialize structured logger.
	logger := observability.InitLogger(cfg.LogLevel)
	logger.Info("starting originationd",
		"env", cfg.Env,
		"grpc_port", cfg.GRPCPort,
		"http_port", cfg.HTTPPort,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database pool.
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()
	logger.Info("database pool created")

	// Run database migrations.
	if migErr := postgres.RunMigrations(cfg.Database.DSN(), cfg.MigrationsDir); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Metrics registry.
	metrics, err := observability.NewMetrics()
	if err != nil {
		return fmt.Errorf("initialize metrics: %w", err)
	}

	// Kafka producer.
	kafkaProducer := kafka.NewProducer(cfg.Kafka, cfg.EventTopic)
	defer kafkaProducer.Close()
	logger.Info("kafka producer created")

	// Repositories.
	userRepo := infraPostgres.NewUserRepository(pool)
	otpRepo := infraPostgres.NewOTPRepository(pool)
	appRepo := infraPostgres.NewLoanApplicationRepository(pool)
	sessionRepo := infraPostgres.NewChatSessionRepository(pool)
	messageRepo := infraPostgres.NewChatMessageRepository(pool)
	documentRepo := infraPostgres.NewDocumentRepository(pool)

	// Infrastructure adapters.
	publisher := messaging.NewKafkaEventPublisher(kafkaProducer)
	bureau := adapter.NewStubCreditBureau()
	generator := textgen.NewClient(cfg.TextGenBaseURL, cfg.TextGenAPIKey, cfg.TextGenModel)

	var notifier port.Notifier
	if cfg.SendGridAPIKey != "" {
		notifier = notify.NewSendGridNotifier(cfg.SendGridAPIKey, cfg.EmailFrom, cfg.EmailFromName)
		logger.Info("using sendgrid notifier", "from", cfg.EmailFrom)
	} else {
		notifier = notify.NewLogNotifier(logger)
		logger.Info("SENDGRID_API_KEY not set, using log notifier")
	}

	renderer, err := render.NewSanctionRenderer(cfg.SanctionDir)
	if err != nil {
		return fmt.Errorf("initialize sanction renderer: %w", err)
	}
	documentStorage, err := storage.NewLocalDocumentStorage(cfg.DocumentDir)
	if err != nil {
		return fmt.Errorf("initialize document storage: %w", err)
	}
	sanctionStorage, err := storage.NewLocalDocumentStorage(cfg.SanctionDir)
	if err != nil {
		return fmt.Errorf("initialize sanction storage: %w", err)
	}

	// Domain services.
	calc := service.NewAffordabilityCalculator()
	engine := service.NewUnderwritingEngine(calc)

	// JWT service for token issuance and gRPC auth.
	jwtSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	// Use cases.
	lifecycle := usecase.NewLoanLifecycle(appRepo, userRepo, documentRepo, engine, publisher, renderer, sanctionStorage, notifier, logger)
	deps := grpcPresentation.HandlerDeps{
		Register:      usecase.NewRegisterUserUseCase(userRepo, bureau, publisher, jwtSvc, logger),
		Login:         usecase.NewLoginUseCase(userRepo, jwtSvc),
		Profile:       usecase.NewProfileUseCase(userRepo),
		Affordability: usecase.NewCheckAffordabilityUseCase(userRepo, calc),
		RequestOTP:    usecase.NewRequestOTPUseCase(userRepo, otpRepo, notifier, publisher, logger),
		VerifyOTP:     usecase.NewVerifyOTPUseCase(userRepo, otpRepo, lifecycle, publisher, logger),
		StartChat:     usecase.NewStartChatSessionUseCase(userRepo, sessionRepo, messageRepo, publisher, logger),
		SendMessage:   usecase.NewSendChatMessageUseCase(userRepo, sessionRepo, messageRepo, generator, publisher, logger),
		ChatHistory:   usecase.NewGetChatHistoryUseCase(sessionRepo, messageRepo),
		Submit:        usecase.NewSubmitLoanApplicationUseCase(userRepo, sessionRepo, calc, lifecycle, logger),
		Applications:  usecase.NewApplicationQueryUseCase(appRepo),
		Upload:        usecase.NewUploadDocumentUseCase(userRepo, documentRepo, documentStorage, lifecycle, publisher, logger),
		Sanction:      usecase.NewDownloadSanctionUseCase(appRepo, sanctionStorage),
	}

	// gRPC server.
	handler := grpcPresentation.NewHandler(deps, logger)
	grpcServer := grpcPresentation.NewServer(handler, logger, cfg.GRPCPort, jwtSvc)

	// HTTP health and metrics server.
	healthHandler := rest.NewHealthHandler(pool, logger)
	mux := http.NewServeMux()
	healthHandler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metrics.Handler())
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		errCh <- grpcServer.Start()
	}()

	go func() {
		logger.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	// Graceful shutdown.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		logger.Error("server error", "error", err)
		return err
	}

	// Shutdown sequence.
	logger.Info("shutting down")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	cancel()
	logger.Info("originationd stopped")
	return nil
}
