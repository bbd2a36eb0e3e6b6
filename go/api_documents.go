package adoptionserver

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	documenthttpmapper "github.com/Apurer/pet-adoption-api/internal/domains/documents/adapters/http/mapper"
	documentsapp "github.com/Apurer/pet-adoption-api/internal/domains/documents/application"
	documenttypes "github.com/Apurer/pet-adoption-api/internal/domains/documents/application/types"
	documentsports "github.com/Apurer/pet-adoption-api/internal/domains/documents/ports"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
	"github.com/Apurer/pet-adoption-api/internal/shared/validation"
)

// DocumentAPI receives adopter documents.
type DocumentAPI struct {
	service   documentsports.Service
	responder *apierrors.Responder
}

// NewDocumentAPI creates a DocumentAPI backed by the provided service.
func NewDocumentAPI(service documentsports.Service, responder *apierrors.Responder) DocumentAPI {
	return DocumentAPI{service: service, responder: responderOrDefault(responder)}
}

// Post /documents/upload
// Stores a document sent as multipart form data
func (api *DocumentAPI) UploadDocument(c *gin.Context) {
	payload := validation.Payload{}
	var header *multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		payload = validation.FromValues(form.Value)
		if files := form.File["file"]; len(files) > 0 {
			header = files[0]
			payload["file"] = true
		}
	}
	if err := documentsapp.UploadRules.Validate(payload); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	file, err := header.Open()
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	defer file.Close()

	result, err := api.service.Upload(c.Request.Context(), documenttypes.UploadInput{
		Description: payload.String("description"),
		Filename:    header.Filename,
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, documenthttpmapper.FromUploadResult(result))
}

// Get /documents/:id
// Shows the metadata of a stored document
func (api *DocumentAPI) GetDocument(c *gin.Context) {
	var id int64
	if err := bindPathParam(c, "id", &id); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	file, err := api.service.Get(c.Request.Context(), documenttypes.FileIdentifier{ID: id})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, documenthttpmapper.FromProjection(file))
}
