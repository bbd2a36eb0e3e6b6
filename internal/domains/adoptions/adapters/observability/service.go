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

	types "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
)

const tracerName = "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/observability/service"

// Service decorates the adoption service with tracing, logging, and metrics.
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
	s := &Service{inner: inner, metrics: newServiceMetrics(nil)}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Request records an adoption request.
func (s *Service) Request(ctx context.Context, input types.RequestAdoptionInput) (*types.AdoptionProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Request", attribute.Int64("pet.id", input.PetID))
	defer span.End()

	result, err := s.inner.Request(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to record adoption request", slog.Int64("pet.id", input.PetID))
	}
	addCounter(ctx, s.metrics.requested, 1)
	span.SetAttributes(attribute.Int64("adoption.id", result.Entity.ID))
	s.logInfo(ctx, "adoption requested", slog.Int64("adoption.id", result.Entity.ID), slog.Int64("pet.id", input.PetID))
	return result, nil
}

// List returns requests for review.
func (s *Service) List(ctx context.Context, input types.ListAdoptionsInput) ([]*types.AdoptionView, error) {
	ctx, span := s.startSpan(ctx, "Service.List", attribute.String("adoption.search", input.Search))
	defer span.End()

	result, err := s.inner.List(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list adoptions", slog.String("search", input.Search))
	}
	span.SetAttributes(attribute.Int("adoption.result.count", len(result)))
	return result, nil
}

// Approve converts a request into a client. Notification failures are logged here.
func (s *Service) Approve(ctx context.Context, input types.ApproveAdoptionInput) (*types.ApprovalResult, error) {
	ctx, span := s.startSpan(ctx, "Service.Approve",
		attribute.Int64("adoption.id", input.AdoptionID),
		attribute.Bool("adoption.idempotent", input.IdempotencyKey != ""))
	defer span.End()

	result, err := s.inner.Approve(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to approve adoption", slog.Int64("adoption.id", input.AdoptionID))
	}
	if result.Replayed {
		span.SetAttributes(attribute.Bool("adoption.replayed", true))
		s.logInfo(ctx, "adoption approval replayed", slog.Int64("adoption.id", input.AdoptionID))
		return result, nil
	}
	addCounter(ctx, s.metrics.approved, 1)
	if result.Client != nil && result.Client.Entity != nil {
		span.SetAttributes(attribute.Int64("client.id", result.Client.Entity.ID))
		s.logInfo(ctx, "adoption approved", slog.Int64("adoption.id", input.AdoptionID), slog.Int64("client.id", result.Client.Entity.ID))
	}
	if result.NotificationError != nil {
		addCounter(ctx, s.metrics.notificationFailures, 1)
		span.AddEvent("notification failed", trace.WithAttributes(attribute.String("error", result.NotificationError.Error())))
		s.logError(ctx, "failed to send documents invitation", result.NotificationError, slog.Int64("adoption.id", input.AdoptionID))
	}
	return result, nil
}

// GetSolicitation loads a solicitation.
func (s *Service) GetSolicitation(ctx context.Context, id types.SolicitationIdentifier) (*types.SolicitationProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.GetSolicitation", attribute.String("solicitation.id", id.ID))
	defer span.End()

	result, err := s.inner.GetSolicitation(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load solicitation", slog.String("solicitation.id", id.ID))
	}
	return result, nil
}

// AttachDocuments links uploaded files to a solicitation.
func (s *Service) AttachDocuments(ctx context.Context, input types.AttachDocumentsInput) (*types.SolicitationProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.AttachDocuments", attribute.String("solicitation.id", input.ID))
	defer span.End()

	result, err := s.inner.AttachDocuments(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to attach documents", slog.String("solicitation.id", input.ID))
	}
	s.logInfo(ctx, "documents attached", slog.String("solicitation.id", input.ID), slog.Bool("complete", result.Entity.Complete()))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	requested            metric.Int64Counter
	approved             metric.Int64Counter
	notificationFailures metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	requested, _ := m.Int64Counter("adoptions.service.requested", metric.WithDescription("Number of adoption requests recorded"))
	approved, _ := m.Int64Counter("adoptions.service.approved", metric.WithDescription("Number of adoptions approved"))
	failures, _ := m.Int64Counter("adoptions.service.notification_failures", metric.WithDescription("Documents invitations that failed after approval"))
	return serviceMetrics{requested: requested, approved: approved, notificationFailures: failures}
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
