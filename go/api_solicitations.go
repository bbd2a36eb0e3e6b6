package adoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	adoptionhttpmapper "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/http/mapper"
	adoptionsapp "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application"
	adoptionstypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	adoptionsports "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
	"github.com/Apurer/pet-adoption-api/internal/shared/validation"
)

// SolicitationAPI exposes the document checklist created on approval.
type SolicitationAPI struct {
	service   adoptionsports.Service
	responder *apierrors.Responder
}

// NewSolicitationAPI creates a SolicitationAPI backed by the adoption service.
func NewSolicitationAPI(service adoptionsports.Service, responder *apierrors.Responder) SolicitationAPI {
	return SolicitationAPI{service: service, responder: responderOrDefault(responder)}
}

// Get /solicitations/:id
// Shows which documents were received for a solicitation
func (api *SolicitationAPI) GetSolicitation(c *gin.Context) {
	var id string
	if err := bindPathParam(c, "id", &id); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	solicitation, err := api.service.GetSolicitation(c.Request.Context(), adoptionstypes.SolicitationIdentifier{ID: id})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromSolicitation(solicitation))
}

// Put /solicitations/:id
// Attaches uploaded documents to a solicitation
func (api *SolicitationAPI) AttachDocuments(c *gin.Context) {
	var id string
	if err := bindPathParam(c, "id", &id); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	payload, err := validation.Decode(c.Request.Body)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	input, err := adoptionsapp.ParseAttachDocuments(id, payload)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	solicitation, err := api.service.AttachDocuments(c.Request.Context(), input)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromSolicitation(solicitation))
}
