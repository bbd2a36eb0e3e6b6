package adoptions

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	"github.com/Apurer/pet-adoption-api/internal/platform/temporal/sequences"
)

const (
	// DocumentsInvitationWorkflowName is the public identifier for registering the workflow.
	DocumentsInvitationWorkflowName = "adoptions.workflows.DocumentsInvitation"
	// DocumentsInvitationTaskQueue is the queue consumed by the worker delivering invitations.
	DocumentsInvitationTaskQueue = "ADOPTION_DOCUMENTS"
)

// DocumentsInvitationWorkflowInput is the payload of one invitation delivery.
type DocumentsInvitationWorkflowInput struct {
	Invitation ports.Invitation
	AdoptionID int64
	TraceID    string
}

// DocumentsInvitationWorkflow delivers the post-approval e-mail durably.
func DocumentsInvitationWorkflow(ctx workflow.Context, input DocumentsInvitationWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("DocumentsInvitationWorkflow started", withTraceID(input.TraceID, "adoptionId", input.AdoptionID, "solicitationId", input.Invitation.SolicitationID)...)
	if err := sequences.RunDocumentsInvitationSequence(ctx, input.Invitation); err != nil {
		logger.Error("DocumentsInvitationWorkflow failed", withTraceID(input.TraceID, "adoptionId", input.AdoptionID, "error", err)...)
		return err
	}
	logger.Info("DocumentsInvitationWorkflow completed", withTraceID(input.TraceID, "adoptionId", input.AdoptionID)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
