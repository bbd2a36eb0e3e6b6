package adoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	adoptionhttpmapper "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/http/mapper"
	adoptionsapp "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application"
	adoptionstypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	adoptionsports "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	clienthttpmapper "github.com/Apurer/pet-adoption-api/internal/domains/clients/adapters/http/mapper"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
	"github.com/Apurer/pet-adoption-api/internal/shared/validation"
)

// IdempotencyKeyHeader lets clients retry an approval safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// AdoptionAPI exposes adoption requests and their approval.
type AdoptionAPI struct {
	service   adoptionsports.Service
	responder *apierrors.Responder
}

// NewAdoptionAPI creates an AdoptionAPI backed by the provided service.
func NewAdoptionAPI(service adoptionsports.Service, responder *apierrors.Responder) AdoptionAPI {
	return AdoptionAPI{service: service, responder: responderOrDefault(responder)}
}

// Post /pets/adocao
// Creates a pending adoption request
func (api *AdoptionAPI) RequestAdoption(c *gin.Context) {
	payload, err := validation.Decode(c.Request.Body)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	input, err := adoptionsapp.ParseRequestAdoption(payload)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	created, err := api.service.Request(c.Request.Context(), input)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, adoptionhttpmapper.FromProjection(created))
}

// Get /adoptions
// Lists adoption requests with their pets for review
func (api *AdoptionAPI) ListAdoptions(c *gin.Context) {
	var search *string
	if err := bindQueryParam(compactQuery(c.Request.URL.Query()), "search", &search); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	input := adoptionstypes.ListAdoptionsInput{}
	if search != nil {
		input.Search = *search
	}
	views, err := api.service.List(c.Request.Context(), input)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromViews(views))
}

// Post /adoptions/realized
// Approves an adoption and registers the adopter as a client
func (api *AdoptionAPI) ApproveAdoption(c *gin.Context) {
	payload, err := validation.Decode(c.Request.Body)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	input, err := adoptionsapp.ParseApproveAdoption(payload, c.GetHeader(IdempotencyKeyHeader))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	result, err := api.service.Approve(c.Request.Context(), input)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, clienthttpmapper.FromProjection(result.Client))
}
