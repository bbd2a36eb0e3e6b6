package types

import (
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	clienttypes "github.com/Apurer/pet-adoption-api/internal/domains/clients/application/types"
	petdomain "github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

// AdoptionProjection transports a request with persistence timestamps.
type AdoptionProjection = projection.Projection[*domain.Adoption]

// SolicitationProjection transports a solicitation with persistence timestamps.
type SolicitationProjection = projection.Projection[*domain.Solicitation]

// RequestAdoptionInput is a validated intake command.
type RequestAdoptionInput struct {
	Name         string
	Contact      string
	Email        string
	CPF          string
	Observations string
	PetID        int64
}

// ListAdoptionsInput filters the review list.
type ListAdoptionsInput struct {
	Search string
}

// AdoptionView is a request joined with its pet. Pet is nil when the pet row is gone.
type AdoptionView struct {
	Adoption *AdoptionProjection
	Pet      *petdomain.Pet
}

// ApproveAdoptionInput identifies the request to approve.
type ApproveAdoptionInput struct {
	AdoptionID     int64
	IdempotencyKey string
}

// ApprovalResult is what an approval produced.
type ApprovalResult struct {
	Client       *clienttypes.ClientProjection
	Solicitation *SolicitationProjection
	// Replayed is set when an idempotency key matched a previous approval.
	Replayed bool
	// NotificationError is the delivery failure, if any. It never fails the approval.
	NotificationError error
}

// SolicitationIdentifier selects a solicitation.
type SolicitationIdentifier struct {
	ID string
}

// AttachDocumentsInput carries the file ids to attach. Nil slots are left untouched.
type AttachDocumentsInput struct {
	ID string
	domain.Documents
}
