package mapper

import (
	"time"

	petstypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
)

// Reference is the HTTP representation of a breed or specie.
type Reference struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PetSummary is the catalog listing row.
type PetSummary struct {
	ID      int64      `json:"id"`
	PetName string     `json:"pet_name"`
	BreedID *int64     `json:"breed_id"`
	Age     int        `json:"age"`
	Breed   *Reference `json:"breed"`
}

// Pet is the full pet representation returned by detail and registration endpoints.
type Pet struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Age       int        `json:"age"`
	Weight    float64    `json:"weight"`
	Size      string     `json:"size"`
	BreedID   *int64     `json:"breed_id"`
	Breed     *Reference `json:"breed"`
	SpecieID  *int64     `json:"specie_id"`
	Specie    *Reference `json:"specie"`
	ClientID  *int64     `json:"client_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// FromProjection maps a domain projection into the detail representation.
func FromProjection(p *petstypes.PetProjection) Pet {
	if p == nil || p.Entity == nil {
		return Pet{}
	}
	pet := p.Entity
	return Pet{
		ID:        pet.ID,
		Name:      pet.Name,
		Age:       pet.Age,
		Weight:    pet.Weight,
		Size:      string(pet.Size),
		BreedID:   pet.BreedID,
		Breed:     FromBreed(pet.Breed),
		SpecieID:  pet.SpecieID,
		Specie:    FromSpecie(pet.Specie),
		ClientID:  pet.ClientID,
		CreatedAt: p.Metadata.CreatedAt,
		UpdatedAt: p.Metadata.UpdatedAt,
	}
}

// FromProjectionList maps the catalog listing. The result is never nil.
func FromProjectionList(list []*petstypes.PetProjection) []PetSummary {
	result := make([]PetSummary, 0, len(list))
	for _, p := range list {
		if p == nil || p.Entity == nil {
			continue
		}
		result = append(result, PetSummary{
			ID:      p.Entity.ID,
			PetName: p.Entity.Name,
			BreedID: p.Entity.BreedID,
			Age:     p.Entity.Age,
			Breed:   FromBreed(p.Entity.Breed),
		})
	}
	return result
}

// FromBreed maps a breed, preserving nil.
func FromBreed(b *domain.Breed) *Reference {
	if b == nil {
		return nil
	}
	return &Reference{ID: b.ID, Name: b.Name}
}

// FromSpecie maps a specie, preserving nil.
func FromSpecie(s *domain.Specie) *Reference {
	if s == nil {
		return nil
	}
	return &Reference{ID: s.ID, Name: s.Name}
}
