package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	clientdomain "github.com/Apurer/pet-adoption-api/internal/domains/clients/domain"
)

// ErrInvalidInput signals that a command violated a domain invariant.
var ErrInvalidInput = errors.New("invalid adoption input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptyContact) ||
		errors.Is(err, domain.ErrEmptyEmail) ||
		errors.Is(err, domain.ErrEmptyCPF) ||
		errors.Is(err, domain.ErrEmptyObservations) ||
		errors.Is(err, domain.ErrEmptySolicitationID) ||
		errors.Is(err, domain.ErrInvalidClient) ||
		errors.Is(err, clientdomain.ErrEmptyName) ||
		errors.Is(err, clientdomain.ErrEmptyEmail) ||
		errors.Is(err, clientdomain.ErrEmptyCPF) ||
		errors.Is(err, clientdomain.ErrInvalidOwner) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
