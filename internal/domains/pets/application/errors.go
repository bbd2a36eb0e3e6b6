package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid pet input")
	// ErrConfidential signals the pet exists but has already been adopted.
	ErrConfidential = errors.New("pet details are confidential")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrNameTooLong) ||
		errors.Is(err, domain.ErrInvalidAge) ||
		errors.Is(err, domain.ErrInvalidWeight) ||
		errors.Is(err, domain.ErrInvalidSize) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
