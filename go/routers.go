package adoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every bounded context exposed over HTTP.
type ApiHandleFunctions struct {
	PetAPI          PetAPI
	AdoptionAPI     AdoptionAPI
	DocumentAPI     DocumentAPI
	SolicitationAPI SolicitationAPI
	ClientAPI       ClientAPI
	HealthAPI       HealthAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes whose handler has not been wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"ListPets", http.MethodGet, "/pets", handleFunctions.PetAPI.ListPets},
		{"GetPet", http.MethodGet, "/pets/:id", handleFunctions.PetAPI.GetPet},
		{"RegisterPet", http.MethodPost, "/pets", handleFunctions.PetAPI.RegisterPet},
		{"RegisterBreed", http.MethodPost, "/breeds", handleFunctions.PetAPI.RegisterBreed},
		{"RegisterSpecie", http.MethodPost, "/species", handleFunctions.PetAPI.RegisterSpecie},
		{"RequestAdoption", http.MethodPost, "/pets/adocao", handleFunctions.AdoptionAPI.RequestAdoption},
		{"ListAdoptions", http.MethodGet, "/adoptions", handleFunctions.AdoptionAPI.ListAdoptions},
		{"ApproveAdoption", http.MethodPost, "/adoptions/realized", handleFunctions.AdoptionAPI.ApproveAdoption},
		{"UploadDocument", http.MethodPost, "/documents/upload", handleFunctions.DocumentAPI.UploadDocument},
		{"GetDocument", http.MethodGet, "/documents/:id", handleFunctions.DocumentAPI.GetDocument},
		{"GetSolicitation", http.MethodGet, "/solicitations/:id", handleFunctions.SolicitationAPI.GetSolicitation},
		{"AttachDocuments", http.MethodPut, "/solicitations/:id", handleFunctions.SolicitationAPI.AttachDocuments},
		{"GetClient", http.MethodGet, "/clients/:id", handleFunctions.ClientAPI.GetClient},
		{"Healthz", http.MethodGet, "/healthz", handleFunctions.HealthAPI.Healthz},
	}
}
