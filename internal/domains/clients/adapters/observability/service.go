package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	clienttypes "github.com/Apurer/pet-adoption-api/internal/domains/clients/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/clients/ports"
)

const tracerName = "github.com/Apurer/pet-adoption-api/internal/domains/clients/adapters/observability/service"

// Service decorates the client registry with tracing and logging.
type Service struct {
	inner  ports.Service
	tracer trace.Tracer
	logger *slog.Logger
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

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{inner: inner}
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

// GetClient loads a client with its person.
func (s *Service) GetClient(ctx context.Context, input clienttypes.ClientIdentifier) (*clienttypes.ClientProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Service.GetClient", trace.WithAttributes(attribute.Int64("client.id", input.ID)))
	defer span.End()

	result, err := s.inner.GetClient(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to load client",
			slog.Int64("client.id", input.ID), slog.String("error", err.Error()))
		return nil, err
	}
	return result, nil
}

var _ ports.Service = (*Service)(nil)
