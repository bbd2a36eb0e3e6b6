package adoptionserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	adoptionsports "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	clientsports "github.com/Apurer/pet-adoption-api/internal/domains/clients/ports"
	petsapp "github.com/Apurer/pet-adoption-api/internal/domains/pets/application"
	petsports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/validation"
)

func TestResponder_MapsDomainErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	responder := NewResponder(nil)

	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", validation.Errors{{Field: "name", Message: "The name field is required."}}, http.StatusBadRequest, "The name field is required."},
		{"malformed", fmt.Errorf("%w: eof", validation.ErrMalformedPayload), http.StatusBadRequest, "Requisição inválida"},
		{"pet missing", fmt.Errorf("link pet 3: %w", petsports.ErrNotFound), http.StatusNotFound, "Dado não encontrado"},
		{"client missing", clientsports.ErrNotFound, http.StatusNotFound, "Dado não encontrado"},
		{"solicitation missing", adoptionsports.ErrSolicitationNotFound, http.StatusNotFound, "Dado não encontrado"},
		{"confidential", petsapp.ErrConfidential, http.StatusForbidden, "Dados confidenciais"},
		{"conflict", adoptionsports.ErrIdempotencyConflict, http.StatusConflict, "Conflito de requisição"},
		{"invalid input", fmt.Errorf("%w: bad size", petsapp.ErrInvalidInput), http.StatusBadRequest, "invalid pet input: bad size"},
		{"unexpected", errors.New("connection reset by peer"), http.StatusInternalServerError, "Erro interno do servidor"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			responder.RespondError(c, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			problem := decodeProblem(t, rec)
			assert.Equal(t, tc.message, problem.Message)
			assert.NotNil(t, problem.Errors)
			assert.NotNil(t, problem.Data)
		})
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := s.doJSON(t, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
