package application

import (
	"context"

	types "github.com/Apurer/pet-adoption-api/internal/domains/clients/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/clients/ports"
)

// Service exposes read access to the client registry.
type Service struct {
	repo ports.Repository
}

// NewService wires the client registry.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// GetClient loads a client with its person.
func (s *Service) GetClient(ctx context.Context, input types.ClientIdentifier) (*types.ClientProjection, error) {
	if input.ID <= 0 {
		return nil, ports.ErrNotFound
	}
	client, err := s.repo.GetClient(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return client, nil
}

var _ ports.Service = (*Service)(nil)
