package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
)

const tracerName = "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/observability/service"

// Service decorates a pets application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// ListAvailable lists the adoptable pets.
func (s *Service) ListAvailable(ctx context.Context, input pettypes.ListPetsInput) ([]*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.ListAvailable", attribute.String("pet.search", input.Search))
	defer span.End()

	result, err := s.inner.ListAvailable(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list pets", slog.String("search", input.Search))
	}
	span.SetAttributes(attribute.Int("pet.result.count", len(result)))
	s.logInfo(ctx, "listed available pets", slog.String("search", input.Search), slog.Int("count", len(result)))
	return result, nil
}

// GetAvailable loads a pet that has not been adopted.
func (s *Service) GetAvailable(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.GetAvailable", attribute.Int64("pet.id", input.ID))
	defer span.End()

	result, err := s.inner.GetAvailable(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load pet", slog.Int64("pet.id", input.ID))
	}
	return result, nil
}

// RegisterPet adds a pet to the catalog.
func (s *Service) RegisterPet(ctx context.Context, input pettypes.RegisterPetInput) (*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.RegisterPet", attribute.String("pet.size", input.Size))
	defer span.End()

	s.logInfo(ctx, "registering pet", slog.String("name", input.Name))
	result, err := s.inner.RegisterPet(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register pet", slog.String("name", input.Name))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordRegistered(ctx, result.Entity.Size)
		span.SetAttributes(attribute.Int64("pet.id", result.Entity.ID))
		s.logInfo(ctx, "pet registered", slog.Int64("pet.id", result.Entity.ID))
	}
	return result, nil
}

// RegisterBreed adds a breed to the catalog.
func (s *Service) RegisterBreed(ctx context.Context, input pettypes.RegisterBreedInput) (*domain.Breed, error) {
	ctx, span := s.startSpan(ctx, "Service.RegisterBreed")
	defer span.End()

	result, err := s.inner.RegisterBreed(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register breed", slog.String("name", input.Name))
	}
	s.logInfo(ctx, "breed registered", slog.Int64("breed.id", result.ID))
	return result, nil
}

// RegisterSpecie adds a specie to the catalog.
func (s *Service) RegisterSpecie(ctx context.Context, input pettypes.RegisterSpecieInput) (*domain.Specie, error) {
	ctx, span := s.startSpan(ctx, "Service.RegisterSpecie")
	defer span.End()

	result, err := s.inner.RegisterSpecie(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register specie", slog.String("name", input.Name))
	}
	s.logInfo(ctx, "specie registered", slog.Int64("specie.id", result.ID))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	petsRegistered metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	petsRegistered, _ := m.Int64Counter("pets.service.registered", metric.WithDescription("Number of pets registered"))
	return serviceMetrics{petsRegistered: petsRegistered}
}

func (m serviceMetrics) recordRegistered(ctx context.Context, size domain.Size) {
	addCounter(ctx, m.petsRegistered, 1, attribute.String("pet.size", string(size)))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
