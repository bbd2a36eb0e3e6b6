package types

import (
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

// PetProjection transports a pet aggregate together with its persistence metadata.
type PetProjection = projection.Projection[*domain.Pet]

// CloneProjectionList duplicates a slice of projections with deep copied pets.
func CloneProjectionList(sources []*PetProjection) []*PetProjection {
	if len(sources) == 0 {
		return nil
	}
	result := make([]*PetProjection, 0, len(sources))
	for _, src := range sources {
		if src == nil {
			continue
		}
		result = append(result, &PetProjection{Entity: src.Entity.Clone(), Metadata: src.Metadata})
	}
	return result
}
