package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cardintake/internal/config"
	"cardintake/internal/email/noop"
	"cardintake/internal/email/ses"
	"cardintake/internal/handler"
	"cardintake/internal/port"
	"cardintake/internal/repository/postgres"
	"cardintake/internal/router"
	"cardintake/internal/service"
	s3storage "cardintake/internal/storage/s3"
	"cardintake/internal/vision"

	// Register vision providers.
	_ "cardintake/internal/vision/claude"
	_ "cardintake/internal/vision/gemini"
	_ "cardintake/internal/vision/openai"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	tenantRepo := postgres.NewTenantRepo(db)
	userRepo := postgres.NewUserRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)
	patientRepo := postgres.NewPatientRepo(db)
	providerRepo := postgres.NewProviderRepo(db)
	payerRepo := postgres.NewPayerRepo(db)
	chargeRepo := postgres.NewChargeRepo(db)
	scanRepo := postgres.NewScanRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	emailSender, err := newEmailSender(&cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Initialize vision describer chain
	describer, err := newDescriber(&cfg.Vision)
	if err != nil {
		return fmt.Errorf("failed to initialize vision describers: %w", err)
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, tenantRepo, cfg.JWT)
	fileSvc := service.NewFileService(fileRepo, s3Client, &cfg.S3)
	tenantSvc := service.NewTenantService(tenantRepo)
	userSvc := service.NewUserService(userRepo, tenantRepo, emailSender)
	patientSvc := service.NewPatientService(patientRepo, payerRepo)
	providerSvc := service.NewProviderService(providerRepo)
	payerSvc := service.NewPayerService(payerRepo)
	chargeSvc := service.NewChargeService(chargeRepo, patientRepo, providerRepo)
	scanSvc := service.NewScanService(scanRepo, fileRepo, patientRepo, payerRepo, s3Client, describer)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	fileH := handler.NewFileHandler(fileSvc)
	scanH := handler.NewScanHandler(scanSvc)
	patientH := handler.NewPatientHandler(patientSvc)
	providerH := handler.NewProviderHandler(providerSvc)
	payerH := handler.NewPayerHandler(payerSvc)
	chargeH := handler.NewChargeHandler(chargeSvc)
	tenantH := handler.NewTenantHandler(tenantSvc)
	userH := handler.NewUserHandler(userSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, fileH, scanH, patientH, providerH, payerH, chargeH, tenantH, userH, healthH)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the scan queue worker
	worker := service.NewScanQueueWorker(scanRepo, scanSvc, service.ScanQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		stop()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	<-workerDone
	return nil
}

// newEmailSender builds the configured EmailSender; "ses" requires AWS
// credentials, anything else falls back to the log-only sender.
func newEmailSender(cfg *config.EmailConfig) (port.EmailSender, error) {
	if cfg.Provider == "ses" {
		return ses.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName)
	}
	return noop.NewNoopSender(), nil
}

// newDescriber builds the describer chain from the configured providers.
// Multiple providers are wrapped in a fallback describer that rotates past
// rate-limited providers.
func newDescriber(cfg *config.VisionConfig) (port.CardDescriber, error) {
	providerCfgs := cfg.Providers()
	if len(providerCfgs) == 0 {
		return nil, fmt.Errorf("no vision providers configured")
	}

	var (
		describers []port.CardDescriber
		names      []string
	)
	for i := range providerCfgs {
		d, err := vision.NewDescriber(&providerCfgs[i])
		if err != nil {
			return nil, fmt.Errorf("provider %q: %w", providerCfgs[i].Provider, err)
		}
		describers = append(describers, d)
		names = append(names, providerCfgs[i].Provider)
	}

	if len(describers) == 1 {
		return describers[0], nil
	}
	return vision.NewFallbackDescriber(describers, names), nil
}
