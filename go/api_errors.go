package adoptionserver

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	adoptionsapp "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application"
	adoptionsports "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	clientsapp "github.com/Apurer/pet-adoption-api/internal/domains/clients/application"
	clientsports "github.com/Apurer/pet-adoption-api/internal/domains/clients/ports"
	documentsapp "github.com/Apurer/pet-adoption-api/internal/domains/documents/application"
	documentsports "github.com/Apurer/pet-adoption-api/internal/domains/documents/ports"
	petsapp "github.com/Apurer/pet-adoption-api/internal/domains/pets/application"
	petsports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
	"github.com/Apurer/pet-adoption-api/internal/shared/validation"
)

// MessagePetNotFound is the message of the pet detail 404.
const MessagePetNotFound = "Dado não encontrado!"

// errBadParameter marks a path or query parameter that could not be bound.
var errBadParameter = errors.New("invalid request parameter")

// NewResponder builds the responder used by every handler, with the mappers for all contexts.
func NewResponder(logger *slog.Logger) *apierrors.Responder {
	return apierrors.NewResponder(logger,
		mapValidationError,
		mapNotFoundError,
		mapConfidentialError,
		mapConflictError,
		mapInvalidInputError,
	)
}

func responderOrDefault(r *apierrors.Responder) *apierrors.Responder {
	if r == nil {
		return NewResponder(nil)
	}
	return r
}

func mapValidationError(err error) (apierrors.Problem, bool) {
	var violations validation.Errors
	if errors.As(err, &violations) {
		fields := make([]apierrors.FieldError, 0, len(violations))
		for _, v := range violations {
			fields = append(fields, apierrors.FieldError{Field: v.Field, Message: v.Message})
		}
		return apierrors.NewValidationProblem(violations.Summary(), fields), true
	}
	if errors.Is(err, validation.ErrMalformedPayload) || errors.Is(err, errBadParameter) {
		return apierrors.ErrBadRequest, true
	}
	return apierrors.Problem{}, false
}

func mapNotFoundError(err error) (apierrors.Problem, bool) {
	switch {
	case errors.Is(err, petsports.ErrNotFound),
		errors.Is(err, adoptionsports.ErrNotFound),
		errors.Is(err, clientsports.ErrNotFound),
		errors.Is(err, documentsports.ErrNotFound):
		return apierrors.ErrNotFound, true
	}
	return apierrors.Problem{}, false
}

func mapConfidentialError(err error) (apierrors.Problem, bool) {
	if errors.Is(err, petsapp.ErrConfidential) {
		return apierrors.ErrForbidden, true
	}
	return apierrors.Problem{}, false
}

func mapConflictError(err error) (apierrors.Problem, bool) {
	if errors.Is(err, adoptionsports.ErrIdempotencyConflict) {
		return apierrors.ErrConflict, true
	}
	return apierrors.Problem{}, false
}

func mapInvalidInputError(err error) (apierrors.Problem, bool) {
	switch {
	case errors.Is(err, petsapp.ErrInvalidInput),
		errors.Is(err, adoptionsapp.ErrInvalidInput),
		errors.Is(err, clientsapp.ErrInvalidInput),
		errors.Is(err, documentsapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithMessage(err.Error()), true
	}
	return apierrors.Problem{}, false
}

// respondPetShowError keeps the pet detail wording for a missing pet.
func respondPetShowError(c *gin.Context, responder *apierrors.Responder, err error) {
	if errors.Is(err, petsports.ErrNotFound) {
		responder.Respond(c, apierrors.ErrNotFound.WithMessage(MessagePetNotFound))
		return
	}
	responder.RespondError(c, err)
}
