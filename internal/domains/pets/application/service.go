package application

import (
	"context"

	types "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
)

// Service orchestrates the pets bounded context use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the pets service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// ListAvailable returns unowned pets matching the optional filters, newest first.
func (s *Service) ListAvailable(ctx context.Context, input types.ListPetsInput) ([]*types.PetProjection, error) {
	filter := domain.Filter{
		Search:   input.Search,
		Age:      input.Age,
		Weight:   input.Weight,
		SpecieID: input.SpecieID,
	}
	if input.Size != nil {
		size := domain.Size(*input.Size)
		if parsed, err := domain.ParseSize(*input.Size); err == nil {
			size = parsed
		}
		filter.Size = &size
	}
	result, err := s.repo.ListAvailable(ctx, filter)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// GetAvailable loads a pet that has not been adopted yet.
// Adopted pets yield ErrConfidential so their owner is never exposed.
func (s *Service) GetAvailable(ctx context.Context, input types.PetIdentifier) (*types.PetProjection, error) {
	projection, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if !projection.Entity.IsAvailable() {
		return nil, ErrConfidential
	}
	return projection, nil
}

// RegisterPet adds a new unowned pet to the catalog.
func (s *Service) RegisterPet(ctx context.Context, input types.RegisterPetInput) (*types.PetProjection, error) {
	pet, err := domain.NewPet(input.Name, input.Age, input.Weight, domain.Size(input.Size))
	if err != nil {
		return nil, mapError(err)
	}
	if input.BreedID != nil {
		breed, err := s.repo.GetBreed(ctx, *input.BreedID)
		if err != nil {
			return nil, mapError(err)
		}
		pet.UpdateBreed(breed)
	}
	if input.SpecieID != nil {
		specie, err := s.repo.GetSpecie(ctx, *input.SpecieID)
		if err != nil {
			return nil, mapError(err)
		}
		pet.UpdateSpecie(specie)
	}
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// RegisterBreed adds a breed to the catalog.
func (s *Service) RegisterBreed(ctx context.Context, input types.RegisterBreedInput) (*domain.Breed, error) {
	breed, err := domain.NewBreed(input.Name)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.SaveBreed(ctx, breed)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// RegisterSpecie adds a specie to the catalog.
func (s *Service) RegisterSpecie(ctx context.Context, input types.RegisterSpecieInput) (*domain.Specie, error) {
	specie, err := domain.NewSpecie(input.Name)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.SaveSpecie(ctx, specie)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

var _ ports.Service = (*Service)(nil)
