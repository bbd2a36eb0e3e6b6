package ports

import (
	"context"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
)

// Notifier delivers the post-approval notification.
type Notifier interface {
	NotifyApproval(ctx context.Context, event domain.AdoptionApproved) error
}

// Invitation is the "submit your documents" message sent to a new client.
type Invitation struct {
	Name           string
	Email          string
	ClientID       int64
	SolicitationID string
}

// InvitationFromEvent extracts the invitation from an approval.
func InvitationFromEvent(event domain.AdoptionApproved) Invitation {
	return Invitation{
		Name:           event.Name,
		Email:          event.Email,
		ClientID:       event.ClientID,
		SolicitationID: event.SolicitationID,
	}
}

// Mailer sends the documents invitation e-mail.
type Mailer interface {
	SendDocumentsInvitation(ctx context.Context, invitation Invitation) error
}
