package application

import (
	types "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/shared/validation"
)

// RequestAdoptionRules is the intake rule set, in evaluation order.
var RequestAdoptionRules = validation.Schema{
	{Name: "name", Kind: validation.KindString, Required: true, Max: domain.MaxNameLength},
	{Name: "contact", Kind: validation.KindString, Required: true, Max: domain.MaxContactLength},
	{Name: "email", Kind: validation.KindString, Required: true},
	{Name: "cpf", Kind: validation.KindString, Required: true},
	{Name: "observations", Kind: validation.KindString, Required: true},
	{Name: "pet_id", Kind: validation.KindInteger, Required: true},
}

// ApproveAdoptionRules validates the approval body.
var ApproveAdoptionRules = validation.Schema{
	{Name: "adoption_id", Kind: validation.KindInteger, Required: true},
}

// AttachDocumentsRules validates a solicitation update. Every slot is optional.
var AttachDocumentsRules = validation.Schema{
	{Name: "cpf", Kind: validation.KindInteger},
	{Name: "rg", Kind: validation.KindInteger},
	{Name: "document_address", Kind: validation.KindInteger},
	{Name: "term_adoption", Kind: validation.KindInteger},
}

// ParseRequestAdoption validates payload and converts it into an intake command.
func ParseRequestAdoption(payload validation.Payload) (types.RequestAdoptionInput, error) {
	if err := RequestAdoptionRules.Validate(payload); err != nil {
		return types.RequestAdoptionInput{}, err
	}
	petID, _ := payload.Int("pet_id")
	return types.RequestAdoptionInput{
		Name:         payload.String("name"),
		Contact:      payload.String("contact"),
		Email:        payload.String("email"),
		CPF:          payload.String("cpf"),
		Observations: payload.String("observations"),
		PetID:        petID,
	}, nil
}

// ParseApproveAdoption validates payload and builds the approval command.
func ParseApproveAdoption(payload validation.Payload, idempotencyKey string) (types.ApproveAdoptionInput, error) {
	if err := ApproveAdoptionRules.Validate(payload); err != nil {
		return types.ApproveAdoptionInput{}, err
	}
	id, _ := payload.Int("adoption_id")
	return types.ApproveAdoptionInput{AdoptionID: id, IdempotencyKey: idempotencyKey}, nil
}

// ParseAttachDocuments validates payload and builds the attach command for solicitation id.
func ParseAttachDocuments(id string, payload validation.Payload) (types.AttachDocumentsInput, error) {
	if err := AttachDocumentsRules.Validate(payload); err != nil {
		return types.AttachDocumentsInput{}, err
	}
	input := types.AttachDocumentsInput{ID: id}
	slots := map[string]**int64{
		"cpf":              &input.CPF,
		"rg":               &input.RG,
		"document_address": &input.DocumentAddress,
		"term_adoption":    &input.TermAdoption,
	}
	for name, slot := range slots {
		if v, ok := payload.Int(name); ok {
			value := v
			*slot = &value
		}
	}
	return input, nil
}
