package adoptionserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adoptionmemory "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/memory"
	adoptionsapp "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application"
	clientmemory "github.com/Apurer/pet-adoption-api/internal/domains/clients/adapters/memory"
	clientsapp "github.com/Apurer/pet-adoption-api/internal/domains/clients/application"
	documentmemory "github.com/Apurer/pet-adoption-api/internal/domains/documents/adapters/memory"
	documentsapp "github.com/Apurer/pet-adoption-api/internal/domains/documents/application"
	petmemory "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/memory"
	petsapp "github.com/Apurer/pet-adoption-api/internal/domains/pets/application"
	petdomain "github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
)

type testServer struct {
	router  *gin.Engine
	pets    *petmemory.Repository
	clients *clientmemory.Repository
	files   *documentmemory.Repository
	objects *documentmemory.ObjectStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &testServer{
		pets:    petmemory.NewRepository(),
		clients: clientmemory.NewRepository(),
		files:   documentmemory.NewRepository(),
		objects: documentmemory.NewObjectStore("https://cdn.example.com"),
	}
	adoptions := adoptionmemory.NewRepository()
	solicitations := adoptionmemory.NewSolicitationRepository()
	uow := adoptionmemory.NewUnitOfWork(adoptions, solicitations, adoptionmemory.NewIdempotencyStore(), s.clients, s.pets)
	ids := 0
	adoptionService := adoptionsapp.NewService(adoptionsapp.Dependencies{
		Adoptions:     adoptions,
		Solicitations: solicitations,
		Pets:          s.pets,
		Files:         s.files,
		UnitOfWork:    uow,
	}, adoptionsapp.WithIDGenerator(func() string {
		ids++
		return "sol-" + strconv.Itoa(ids)
	}))

	responder := NewResponder(nil)
	s.router = NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{
		PetAPI:          NewPetAPI(petsapp.NewService(s.pets), responder),
		AdoptionAPI:     NewAdoptionAPI(adoptionService, responder),
		DocumentAPI:     NewDocumentAPI(documentsapp.NewService(s.files, s.objects), responder),
		SolicitationAPI: NewSolicitationAPI(adoptionService, responder),
		ClientAPI:       NewClientAPI(clientsapp.NewService(s.clients), responder),
		HealthAPI:       NewHealthAPI(nil),
	})
	return s
}

func (s *testServer) seedPet(t *testing.T, name string, age int, size petdomain.Size) int64 {
	t.Helper()
	pet, err := petdomain.NewPet(name, age, 8.5, size)
	require.NoError(t, err)
	saved, err := s.pets.Save(context.Background(), pet)
	require.NoError(t, err)
	return saved.Entity.ID
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) doJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(jsonRequest(t, method, path, body))
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var raw []byte
	switch v := body.(type) {
	case nil:
	case string:
		raw = []byte(v)
	default:
		var err error
		raw, err = json.Marshal(v)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) apierrors.Problem {
	t.Helper()
	return decodeBody[apierrors.Problem](t, rec)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
