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

	documenttypes "github.com/Apurer/pet-adoption-api/internal/domains/documents/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/documents/ports"
)

const tracerName = "github.com/Apurer/pet-adoption-api/internal/domains/documents/adapters/observability/service"

// Service decorates document uploads with tracing, logging, and metrics.
type Service struct {
	inner    ports.Service
	tracer   trace.Tracer
	logger   *slog.Logger
	uploaded metric.Int64Counter
	bytes    metric.Int64Counter
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

// WithMeter creates the upload counters on m.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.uploaded, _ = m.Int64Counter("documents.service.uploaded", metric.WithDescription("Number of documents uploaded"))
		s.bytes, _ = m.Int64Counter("documents.service.uploaded_bytes", metric.WithDescription("Bytes of uploaded documents"), metric.WithUnit("By"))
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

// Upload stores a document with instrumentation.
func (s *Service) Upload(ctx context.Context, input documenttypes.UploadInput) (*documenttypes.UploadResult, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Upload", trace.WithAttributes(
		attribute.String("document.filename", input.Filename),
		attribute.Int64("document.size", input.Size),
	))
	defer span.End()

	result, err := s.inner.Upload(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to upload document",
			slog.String("filename", input.Filename), slog.String("error", err.Error()))
		return nil, err
	}
	if result != nil && result.File != nil {
		file := result.File.Entity
		attrs := metric.WithAttributes(attribute.String("document.mime", file.Mime))
		if s.uploaded != nil {
			s.uploaded.Add(ctx, 1, attrs)
		}
		if s.bytes != nil {
			s.bytes.Add(ctx, file.Size, attrs)
		}
		s.logger.LogAttrs(ctx, slog.LevelInfo, "document uploaded",
			slog.Int64("file.id", file.ID), slog.String("file.name", file.Name), slog.String("file.url", file.URL))
	}
	return result, nil
}

// Get loads document metadata with tracing.
func (s *Service) Get(ctx context.Context, input documenttypes.FileIdentifier) (*documenttypes.FileProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Get", trace.WithAttributes(attribute.Int64("file.id", input.ID)))
	defer span.End()

	file, err := s.inner.Get(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return file, nil
}

var _ ports.Service = (*Service)(nil)
