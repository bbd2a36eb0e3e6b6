package ports

import (
	"context"

	types "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
)

// Service exposes the adoption use cases.
type Service interface {
	Request(ctx context.Context, input types.RequestAdoptionInput) (*types.AdoptionProjection, error)
	List(ctx context.Context, input types.ListAdoptionsInput) ([]*types.AdoptionView, error)
	Approve(ctx context.Context, input types.ApproveAdoptionInput) (*types.ApprovalResult, error)
	GetSolicitation(ctx context.Context, id types.SolicitationIdentifier) (*types.SolicitationProjection, error)
	AttachDocuments(ctx context.Context, input types.AttachDocumentsInput) (*types.SolicitationProjection, error)
}
