package adoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pethttpmapper "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/http/mapper"
	petsapp "github.com/Apurer/pet-adoption-api/internal/domains/pets/application"
	petstypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	petsports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
	"github.com/Apurer/pet-adoption-api/internal/shared/validation"
)

// PetAPI wires HTTP transport with the pets catalog service.
type PetAPI struct {
	service   petsports.Service
	responder *apierrors.Responder
}

// NewPetAPI creates a PetAPI backed by the provided service.
func NewPetAPI(service petsports.Service, responder *apierrors.Responder) PetAPI {
	return PetAPI{service: service, responder: responderOrDefault(responder)}
}

// Get /pets
// Lists pets available for adoption
func (api *PetAPI) ListPets(c *gin.Context) {
	query := compactQuery(c.Request.URL.Query())
	var (
		search *string
		input  petstypes.ListPetsInput
	)
	for _, param := range []struct {
		name string
		dest any
	}{
		{"search", &search},
		{"age", &input.Age},
		{"size", &input.Size},
		{"weight", &input.Weight},
		{"specie_id", &input.SpecieID},
	} {
		if err := bindQueryParam(query, param.name, param.dest); err != nil {
			api.responder.RespondError(c, err)
			return
		}
	}
	if search != nil {
		input.Search = *search
	}
	result, err := api.service.ListAvailable(c.Request.Context(), input)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjectionList(result))
}

// Get /pets/:id
// Shows a pet that has not been adopted yet
func (api *PetAPI) GetPet(c *gin.Context) {
	var id int64
	if err := bindPathParam(c, "id", &id); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	pet, err := api.service.GetAvailable(c.Request.Context(), petstypes.PetIdentifier{ID: id})
	if err != nil {
		respondPetShowError(c, api.responder, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjection(pet))
}

// Post /pets
// Adds a pet to the catalog
func (api *PetAPI) RegisterPet(c *gin.Context) {
	payload, err := validation.Decode(c.Request.Body)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	input, err := petsapp.ParseRegisterPet(payload)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	saved, err := api.service.RegisterPet(c.Request.Context(), input)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pethttpmapper.FromProjection(saved))
}

// Post /breeds
// Adds a breed to the catalog
func (api *PetAPI) RegisterBreed(c *gin.Context) {
	name, ok := api.catalogName(c)
	if !ok {
		return
	}
	breed, err := api.service.RegisterBreed(c.Request.Context(), petstypes.RegisterBreedInput{Name: name})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pethttpmapper.FromBreed(breed))
}

// Post /species
// Adds a specie to the catalog
func (api *PetAPI) RegisterSpecie(c *gin.Context) {
	name, ok := api.catalogName(c)
	if !ok {
		return
	}
	specie, err := api.service.RegisterSpecie(c.Request.Context(), petstypes.RegisterSpecieInput{Name: name})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pethttpmapper.FromSpecie(specie))
}

func (api *PetAPI) catalogName(c *gin.Context) (string, bool) {
	payload, err := validation.Decode(c.Request.Body)
	if err == nil {
		err = petsapp.CatalogNameRules.Validate(payload)
	}
	if err != nil {
		api.responder.RespondError(c, err)
		return "", false
	}
	return payload.String("name"), true
}
