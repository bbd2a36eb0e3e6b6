package adoptions

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
)

// SendDocumentsInvitationActivityName e-mails the documents invitation to a new client.
const SendDocumentsInvitationActivityName = "adoptions.activities.SendDocumentsInvitation"

// Activities groups activities that operate on the adoptions bounded context.
type Activities struct {
	mailer ports.Mailer
}

// NewActivities wires the mailer into the Temporal activities bundle.
func NewActivities(mailer ports.Mailer) *Activities {
	return &Activities{mailer: mailer}
}

// SendDocumentsInvitation delivers one invitation. Temporal retries it on error.
func (a *Activities) SendDocumentsInvitation(ctx context.Context, invitation ports.Invitation) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.mailer == nil {
		logger.Error("documents invitation activity not initialized", "solicitationId", invitation.SolicitationID)
		return errors.New("documents invitation activity not initialized")
	}
	info := activity.GetInfo(ctx)
	logger.Info("SendDocumentsInvitation activity started", "solicitationId", invitation.SolicitationID, "attempt", info.Attempt)
	if err := a.mailer.SendDocumentsInvitation(ctx, invitation); err != nil {
		logger.Error("SendDocumentsInvitation activity failed", "solicitationId", invitation.SolicitationID, "error", err)
		return err
	}
	logger.Info("SendDocumentsInvitation activity completed", "solicitationId", invitation.SolicitationID)
	return nil
}
