package adoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	clienthttpmapper "github.com/Apurer/pet-adoption-api/internal/domains/clients/adapters/http/mapper"
	clienttypes "github.com/Apurer/pet-adoption-api/internal/domains/clients/application/types"
	clientsports "github.com/Apurer/pet-adoption-api/internal/domains/clients/ports"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
)

// ClientAPI exposes the registered adopters.
type ClientAPI struct {
	service   clientsports.Service
	responder *apierrors.Responder
}

// NewClientAPI creates a ClientAPI backed by the provided service.
func NewClientAPI(service clientsports.Service, responder *apierrors.Responder) ClientAPI {
	return ClientAPI{service: service, responder: responderOrDefault(responder)}
}

// Get /clients/:id
// Shows a client with its person
func (api *ClientAPI) GetClient(c *gin.Context) {
	var id int64
	if err := bindPathParam(c, "id", &id); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	client, err := api.service.GetClient(c.Request.Context(), clienttypes.ClientIdentifier{ID: id})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clienthttpmapper.FromProjection(client))
}
