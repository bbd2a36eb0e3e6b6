package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	smtpclient "github.com/Apurer/pet-adoption-api/internal/clients/smtp"
	adoptionmemory "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/memory"
	adoptionnotifications "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/notifications"
	adoptionpostgres "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/persistence/postgres"
	adoptionsports "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	clientmemory "github.com/Apurer/pet-adoption-api/internal/domains/clients/adapters/memory"
	clientpostgres "github.com/Apurer/pet-adoption-api/internal/domains/clients/adapters/persistence/postgres"
	clientsports "github.com/Apurer/pet-adoption-api/internal/domains/clients/ports"
	documentmemory "github.com/Apurer/pet-adoption-api/internal/domains/documents/adapters/memory"
	documentpostgres "github.com/Apurer/pet-adoption-api/internal/domains/documents/adapters/persistence/postgres"
	documents3 "github.com/Apurer/pet-adoption-api/internal/domains/documents/adapters/storage/s3"
	documentsports "github.com/Apurer/pet-adoption-api/internal/domains/documents/ports"
	petmemory "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/memory"
	petpostgres "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/persistence/postgres"
	petsports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/pet-adoption-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/pet-adoption-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/pet-adoption-api/internal/platform/postgres"
)

// memoryObjectBaseURL prefixes object URLs when no bucket is configured.
const memoryObjectBaseURL = "memory://adocao"

// Repositories groups the persistence ports of every context behind one backend.
type Repositories struct {
	Pets          petsports.Repository
	Clients       clientsports.Repository
	Files         documentsports.Repository
	Adoptions     adoptionsports.Repository
	Solicitations adoptionsports.SolicitationRepository
	UnitOfWork    adoptionsports.UnitOfWork
	// DB is nil for the in-memory backend.
	DB *gorm.DB
}

// BuildRepositories selects the storage backend. A postgres backend that cannot be reached
// falls back to memory so local runs keep working.
func BuildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (Repositories, func(), error) {
	if cfg.StorageBackend == StoragePostgres {
		db, cleanup := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
		if db != nil {
			if err := migrations.Run(db.WithContext(ctx)); err != nil {
				cleanup()
				return Repositories{}, func() {}, fmt.Errorf("run migrations: %w", err)
			}
			logger.Info("repositories configured with postgres")
			return Repositories{
				Pets:          petpostgres.NewRepository(db),
				Clients:       clientpostgres.NewRepository(db),
				Files:         documentpostgres.NewRepository(db),
				Adoptions:     adoptionpostgres.NewRepository(db),
				Solicitations: adoptionpostgres.NewSolicitationRepository(db),
				UnitOfWork:    adoptionpostgres.NewUnitOfWork(db),
				DB:            db,
			}, cleanup, nil
		}
	}
	logger.Info("repositories configured in memory")
	pets := petmemory.NewRepository()
	clients := clientmemory.NewRepository()
	adoptions := adoptionmemory.NewRepository()
	solicitations := adoptionmemory.NewSolicitationRepository()
	return Repositories{
		Pets:          pets,
		Clients:       clients,
		Files:         documentmemory.NewRepository(),
		Adoptions:     adoptions,
		Solicitations: solicitations,
		UnitOfWork:    adoptionmemory.NewUnitOfWork(adoptions, solicitations, adoptionmemory.NewIdempotencyStore(), clients, pets),
	}, func() {}, nil
}

// BuildObjectStore returns the S3 store when a bucket is configured, the in-memory store otherwise.
func BuildObjectStore(ctx context.Context, cfg Config, logger *slog.Logger) (documentsports.ObjectStore, error) {
	if cfg.S3.Bucket == "" {
		logger.Warn("S3_BUCKET not set, keeping uploaded documents in memory")
		return documentmemory.NewObjectStore(memoryObjectBaseURL), nil
	}
	store, err := documents3.NewFromConfig(ctx, documents3.Config{
		Bucket:          cfg.S3.Bucket,
		Region:          cfg.S3.Region,
		Endpoint:        cfg.S3.Endpoint,
		PublicBaseURL:   cfg.S3.PublicBaseURL,
		ForcePathStyle:  cfg.S3.ForcePathStyle,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
	})
	if err != nil {
		return nil, fmt.Errorf("configure s3 store: %w", err)
	}
	logger.Info("document storage configured with s3", slog.String("bucket", cfg.S3.Bucket))
	return store, nil
}

// BuildMailer sends invitations over SMTP when a host is configured and logs them otherwise.
func BuildMailer(cfg Config, logger *slog.Logger) (adoptionsports.Mailer, error) {
	if cfg.SMTP.Host == "" {
		logger.Warn("SMTP_HOST not set, documents invitations will only be logged")
		return adoptionnotifications.NewLogMailer(logger, cfg.DocumentsPortalURL), nil
	}
	sender, err := smtpclient.NewClient(smtpclient.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		return nil, fmt.Errorf("configure smtp: %w", err)
	}
	return adoptionnotifications.NewSMTPMailer(sender, cfg.DocumentsPortalURL), nil
}

// DialTemporal connects a traced Temporal client.
func DialTemporal(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
