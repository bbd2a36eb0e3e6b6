package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var (
	ErrNotFound       = errors.New("pet not found")
	ErrBreedNotFound  = fmt.Errorf("breed: %w", ErrNotFound)
	ErrSpecieNotFound = fmt.Errorf("specie: %w", ErrNotFound)
)

// Repository persists the pet catalog together with its breeds and species.
type Repository interface {
	Ownership
	Directory

	Save(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Pet], error)
	// ListAvailable returns unowned pets matching filter, newest first.
	ListAvailable(ctx context.Context, filter domain.Filter) ([]*projection.Projection[*domain.Pet], error)

	SaveBreed(ctx context.Context, breed *domain.Breed) (*domain.Breed, error)
	GetBreed(ctx context.Context, id int64) (*domain.Breed, error)
	SaveSpecie(ctx context.Context, specie *domain.Specie) (*domain.Specie, error)
	GetSpecie(ctx context.Context, id int64) (*domain.Specie, error)
}

// Ownership is the narrow write port used by the adoption approval flow.
type Ownership interface {
	// AssignOwner links the pet to clientID, returning ErrNotFound when the pet is missing.
	AssignOwner(ctx context.Context, petID, clientID int64) error
}

// Directory resolves pets in bulk for read models owned by other contexts.
type Directory interface {
	// FindByIDs returns the pets that exist among ids, keyed by id.
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Pet, error)
}
