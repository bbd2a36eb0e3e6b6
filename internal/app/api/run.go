package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	adoptionserver "github.com/Apurer/pet-adoption-api/go"

	adoptionsobs "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/observability"
	adoptionworkflows "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/workflows"
	adoptionsapp "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application"
	adoptionsports "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	clientsobs "github.com/Apurer/pet-adoption-api/internal/domains/clients/adapters/observability"
	clientsapp "github.com/Apurer/pet-adoption-api/internal/domains/clients/application"
	documentsobs "github.com/Apurer/pet-adoption-api/internal/domains/documents/adapters/observability"
	documentsapp "github.com/Apurer/pet-adoption-api/internal/domains/documents/application"
	petsobs "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/observability"
	petsapp "github.com/Apurer/pet-adoption-api/internal/domains/pets/application"
	"github.com/Apurer/pet-adoption-api/internal/platform/metrics"
	platformobservability "github.com/Apurer/pet-adoption-api/internal/platform/observability"
)

const serviceName = "pet-adoption-api"

// Run boots the adoption HTTP API with observability, repositories and workflows wired,
// and serves until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName,
		platformobservability.WithLogLevel(cfg.LogLevel),
		platformobservability.WithEnvironment(cfg.Environment),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repos, cleanupRepos, err := BuildRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanupRepos()
	objects, err := BuildObjectStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	notifier, closeNotifier, err := buildNotifier(cfg, instruments)
	if err != nil {
		return err
	}
	defer closeNotifier()

	petService := petsobs.New(
		petsapp.NewService(repos.Pets),
		petsobs.WithLogger(logger),
		petsobs.WithTracer(instruments.Tracer("internal.pets.application")),
		petsobs.WithMeter(instruments.Meter("internal.pets.application")),
	)
	clientService := clientsobs.New(
		clientsapp.NewService(repos.Clients),
		clientsobs.WithLogger(logger),
		clientsobs.WithTracer(instruments.Tracer("internal.clients.application")),
	)
	documentService := documentsobs.New(
		documentsapp.NewService(repos.Files, objects),
		documentsobs.WithLogger(logger),
		documentsobs.WithTracer(instruments.Tracer("internal.documents.application")),
		documentsobs.WithMeter(instruments.Meter("internal.documents.application")),
	)
	adoptionService := adoptionsobs.New(
		adoptionsapp.NewService(adoptionsapp.Dependencies{
			Adoptions:     repos.Adoptions,
			Solicitations: repos.Solicitations,
			Pets:          repos.Pets,
			Files:         repos.Files,
			UnitOfWork:    repos.UnitOfWork,
		}, adoptionsapp.WithNotifier(notifier)),
		adoptionsobs.WithLogger(logger),
		adoptionsobs.WithTracer(instruments.Tracer("internal.adoptions.application")),
		adoptionsobs.WithMeter(instruments.Meter("internal.adoptions.application")),
	)

	var health adoptionserver.Pinger
	if repos.DB != nil {
		if sqlDB, err := repos.DB.DB(); err == nil {
			health = sqlDB
		}
	}
	responder := adoptionserver.NewResponder(logger)
	handlers := adoptionserver.ApiHandleFunctions{
		PetAPI:          adoptionserver.NewPetAPI(petService, responder),
		AdoptionAPI:     adoptionserver.NewAdoptionAPI(adoptionService, responder),
		DocumentAPI:     adoptionserver.NewDocumentAPI(documentService, responder),
		SolicitationAPI: adoptionserver.NewSolicitationAPI(adoptionService, responder),
		ClientAPI:       adoptionserver.NewClientAPI(clientService, responder),
		HealthAPI:       adoptionserver.NewHealthAPI(health),
	}

	httpMetrics := metrics.NewHTTP()
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName), httpMetrics.Middleware())
	router.GET("/metrics", gin.WrapH(httpMetrics.Handler()))
	adoptionserver.NewRouterWithGinEngine(router, handlers)

	return serve(ctx, cfg, router, logger)
}

func serve(ctx context.Context, cfg Config, handler http.Handler, logger *slog.Logger) error {
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("adoption API listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("adoption API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	logger.Info("shutting down adoption API", slog.Duration("timeout", cfg.ShutdownTimeout))
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// buildNotifier starts the documents workflow on Temporal when reachable and mails inline otherwise.
func buildNotifier(cfg Config, instruments *platformobservability.Instruments) (adoptionsports.Notifier, func(), error) {
	logger := instruments.Logger
	temporalClient, err := DialTemporal(cfg, instruments)
	if err == nil {
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
		return adoptionworkflows.NewTemporalNotifier(temporalClient), temporalClient.Close, nil
	}
	logger.Warn("Temporal workflows unavailable, sending documents invitations inline", slog.String("error", err.Error()))
	mailer, err := BuildMailer(cfg, logger)
	if err != nil {
		return nil, func() {}, err
	}
	return adoptionworkflows.NewInlineNotifier(mailer), func() {}, nil
}
