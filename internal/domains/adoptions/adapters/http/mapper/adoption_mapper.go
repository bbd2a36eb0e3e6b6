package mapper

import (
	"time"

	types "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	petdomain "github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
)

// Adoption is the HTTP representation of an adoption request.
type Adoption struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Contact      string    `json:"contact"`
	Email        string    `json:"email"`
	CPF          string    `json:"cpf"`
	Observations string    `json:"observations"`
	PetID        int64     `json:"pet_id"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AdoptionWithPet is a review row.
type AdoptionWithPet struct {
	Adoption
	Pet *Pet `json:"pet"`
}

// Pet is the pet embedded in review rows.
type Pet struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Age      int     `json:"age"`
	Weight   float64 `json:"weight"`
	Size     string  `json:"size"`
	BreedID  *int64  `json:"breed_id"`
	SpecieID *int64  `json:"specie_id"`
	ClientID *int64  `json:"client_id"`
}

// Solicitation is the HTTP representation of a document solicitation.
type Solicitation struct {
	ID              string    `json:"id"`
	ClientID        int64     `json:"client_id"`
	CPF             *int64    `json:"cpf"`
	RG              *int64    `json:"rg"`
	DocumentAddress *int64    `json:"document_address"`
	TermAdoption    *int64    `json:"term_adoption"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FromProjection maps a stored request.
func FromProjection(p *types.AdoptionProjection) Adoption {
	if p == nil || p.Entity == nil {
		return Adoption{}
	}
	a := p.Entity
	return Adoption{
		ID:           a.ID,
		Name:         a.Name,
		Contact:      a.Contact,
		Email:        a.Email,
		CPF:          a.CPF,
		Observations: a.Observations,
		PetID:        a.PetID,
		Status:       string(a.Status),
		CreatedAt:    p.Metadata.CreatedAt,
		UpdatedAt:    p.Metadata.UpdatedAt,
	}
}

// FromViews maps the review list. The result is never nil.
func FromViews(views []*types.AdoptionView) []AdoptionWithPet {
	result := make([]AdoptionWithPet, 0, len(views))
	for _, v := range views {
		if v == nil {
			continue
		}
		result = append(result, AdoptionWithPet{Adoption: FromProjection(v.Adoption), Pet: fromPet(v.Pet)})
	}
	return result
}

// FromSolicitation maps a solicitation.
func FromSolicitation(p *types.SolicitationProjection) Solicitation {
	if p == nil || p.Entity == nil {
		return Solicitation{}
	}
	s := p.Entity
	return Solicitation{
		ID:              s.ID,
		ClientID:        s.ClientID,
		CPF:             s.CPF,
		RG:              s.RG,
		DocumentAddress: s.DocumentAddress,
		TermAdoption:    s.TermAdoption,
		CreatedAt:       p.Metadata.CreatedAt,
		UpdatedAt:       p.Metadata.UpdatedAt,
	}
}

func fromPet(p *petdomain.Pet) *Pet {
	if p == nil {
		return nil
	}
	return &Pet{
		ID:       p.ID,
		Name:     p.Name,
		Age:      p.Age,
		Weight:   p.Weight,
		Size:     string(p.Size),
		BreedID:  p.BreedID,
		SpecieID: p.SpecieID,
		ClientID: p.ClientID,
	}
}
