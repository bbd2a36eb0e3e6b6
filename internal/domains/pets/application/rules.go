package application

import (
	types "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/shared/validation"
)

// RegisterPetRules validates the body of a pet registration.
var RegisterPetRules = validation.Schema{
	{Name: "name", Kind: validation.KindString, Required: true, Max: domain.MaxNameLength},
	{Name: "age", Kind: validation.KindInteger, Required: true},
	{Name: "weight", Kind: validation.KindNumber, Required: true},
	{Name: "size", Kind: validation.KindString},
	{Name: "breed_id", Kind: validation.KindInteger},
	{Name: "specie_id", Kind: validation.KindInteger},
}

// CatalogNameRules validates breed and specie registrations.
var CatalogNameRules = validation.Schema{
	{Name: "name", Kind: validation.KindString, Required: true, Max: domain.MaxNameLength},
}

// ParseRegisterPet validates payload and converts it into a registration command.
func ParseRegisterPet(payload validation.Payload) (types.RegisterPetInput, error) {
	if err := RegisterPetRules.Validate(payload); err != nil {
		return types.RegisterPetInput{}, err
	}
	age, _ := payload.Int("age")
	weight, _ := payload.Float("weight")
	input := types.RegisterPetInput{
		Name:   payload.String("name"),
		Age:    int(age),
		Weight: weight,
		Size:   payload.String("size"),
	}
	if id, ok := payload.Int("breed_id"); ok {
		input.BreedID = &id
	}
	if id, ok := payload.Int("specie_id"); ok {
		input.SpecieID = &id
	}
	return input, nil
}
