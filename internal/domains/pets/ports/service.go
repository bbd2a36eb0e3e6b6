package ports

import (
	"context"

	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
)

// Service defines the pets use cases exposed to adapters (inbound/driving port).
type Service interface {
	ListAvailable(ctx context.Context, input pettypes.ListPetsInput) ([]*pettypes.PetProjection, error)
	GetAvailable(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error)
	RegisterPet(ctx context.Context, input pettypes.RegisterPetInput) (*pettypes.PetProjection, error)
	RegisterBreed(ctx context.Context, input pettypes.RegisterBreedInput) (*domain.Breed, error)
	RegisterSpecie(ctx context.Context, input pettypes.RegisterSpecieInput) (*domain.Specie, error)
}
