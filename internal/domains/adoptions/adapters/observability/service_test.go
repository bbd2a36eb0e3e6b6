package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	types "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	clienttypes "github.com/Apurer/pet-adoption-api/internal/domains/clients/application/types"
	clientdomain "github.com/Apurer/pet-adoption-api/internal/domains/clients/domain"
)

type stubService struct {
	ports.Service
	result *types.ApprovalResult
	err    error
}

func (s stubService) Approve(context.Context, types.ApproveAdoptionInput) (*types.ApprovalResult, error) {
	return s.result, s.err
}

func counterValue(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	return 0
}

func TestApprove_LogsNotificationFailure(t *testing.T) {
	var buf bytes.Buffer
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	inner := stubService{result: &types.ApprovalResult{
		Client:            &clienttypes.ClientProjection{Entity: &clientdomain.Client{ID: 9}},
		NotificationError: errors.New("smtp down"),
	}}
	svc := New(inner, WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))), WithMeter(meter))

	result, err := svc.Approve(context.Background(), types.ApproveAdoptionInput{AdoptionID: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(9), result.Client.Entity.ID)
	assert.Contains(t, buf.String(), "failed to send documents invitation")
	assert.Contains(t, buf.String(), "smtp down")
	assert.Equal(t, int64(1), counterValue(t, reader, "adoptions.service.approved"))
	assert.Equal(t, int64(1), counterValue(t, reader, "adoptions.service.notification_failures"))
}

func TestApprove_ReplayIsNotCounted(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	svc := New(stubService{result: &types.ApprovalResult{Replayed: true}}, WithMeter(meter))

	_, err := svc.Approve(context.Background(), types.ApproveAdoptionInput{AdoptionID: 1, IdempotencyKey: "k"})

	require.NoError(t, err)
	assert.Zero(t, counterValue(t, reader, "adoptions.service.approved"))
}

func TestApprove_PropagatesErrors(t *testing.T) {
	svc := New(stubService{err: ports.ErrNotFound})

	_, err := svc.Approve(context.Background(), types.ApproveAdoptionInput{AdoptionID: 1})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

