package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	adoptionactivities "github.com/Apurer/pet-adoption-api/internal/platform/temporal/activities/adoptions"
)

// DocumentsInvitationActivityOptions bounds delivery retries so a dead mailbox
// does not keep the workflow open forever.
var DocumentsInvitationActivityOptions = workflow.ActivityOptions{
	StartToCloseTimeout: 30 * time.Second,
	RetryPolicy: &temporal.RetryPolicy{
		InitialInterval:    5 * time.Second,
		BackoffCoefficient: 2.0,
		MaximumInterval:    5 * time.Minute,
		MaximumAttempts:    10,
	},
}

// RunDocumentsInvitationSequence sends the invitation e-mail with the retry policy above.
func RunDocumentsInvitationSequence(ctx workflow.Context, invitation ports.Invitation) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("documents invitation sequence started", "solicitationId", invitation.SolicitationID)
	ctx = workflow.WithActivityOptions(ctx, DocumentsInvitationActivityOptions)
	if err := workflow.ExecuteActivity(ctx, adoptionactivities.SendDocumentsInvitationActivityName, invitation).Get(ctx, nil); err != nil {
		logger.Error("documents invitation sequence failed", "solicitationId", invitation.SolicitationID, "error", err)
		return err
	}
	logger.Info("documents invitation sequence delivered", "solicitationId", invitation.SolicitationID)
	return nil
}
