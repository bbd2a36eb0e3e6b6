package workflows

import (
	"context"
	"errors"
	"fmt"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	adoptionworkflows "github.com/Apurer/pet-adoption-api/internal/platform/temporal/workflows/adoptions"
)

var (
	_ ports.Notifier = (*TemporalNotifier)(nil)
	_ ports.Notifier = (*InlineNotifier)(nil)
)

// WorkflowStarter is the slice of the Temporal client used to start workflows.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// TemporalNotifier hands invitations to a durable workflow. It does not wait for delivery.
type TemporalNotifier struct {
	client    WorkflowStarter
	taskQueue string
}

// NewTemporalNotifier wires a Temporal client into the notifier.
func NewTemporalNotifier(c WorkflowStarter) *TemporalNotifier {
	return &TemporalNotifier{client: c, taskQueue: adoptionworkflows.DocumentsInvitationTaskQueue}
}

// NotifyApproval starts one workflow per solicitation; a duplicate start is treated as delivered.
func (n *TemporalNotifier) NotifyApproval(ctx context.Context, event domain.AdoptionApproved) error {
	if n == nil || n.client == nil {
		return errors.New("temporal notifier not configured")
	}
	options := client.StartWorkflowOptions{
		ID:        WorkflowID(event.SolicitationID),
		TaskQueue: n.taskQueue,
	}
	_, err := n.client.ExecuteWorkflow(ctx, options, adoptionworkflows.DocumentsInvitationWorkflowName,
		adoptionworkflows.DocumentsInvitationWorkflowInput{
			Invitation: ports.InvitationFromEvent(event),
			AdoptionID: event.AdoptionID,
			TraceID:    traceID(ctx),
		})
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil
		}
		return fmt.Errorf("start documents invitation workflow: %w", err)
	}
	return nil
}

// WorkflowID is deterministic per solicitation so retries never send twice.
func WorkflowID(solicitationID string) string {
	return "adoption-documents-" + solicitationID
}

// InlineNotifier sends the invitation synchronously, for development without Temporal.
type InlineNotifier struct {
	mailer ports.Mailer
}

// NewInlineNotifier wraps a mailer.
func NewInlineNotifier(mailer ports.Mailer) *InlineNotifier {
	return &InlineNotifier{mailer: mailer}
}

// NotifyApproval sends the invitation once. Failures are returned to the caller.
func (n *InlineNotifier) NotifyApproval(ctx context.Context, event domain.AdoptionApproved) error {
	if n == nil || n.mailer == nil {
		return errors.New("inline notifier not configured")
	}
	return n.mailer.SendDocumentsInvitation(ctx, ports.InvitationFromEvent(event))
}

func traceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
