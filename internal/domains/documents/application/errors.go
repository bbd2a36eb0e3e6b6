package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/pet-adoption-api/internal/domains/documents/domain"
)

// ErrInvalidInput signals the upload violated a domain invariant.
var ErrInvalidInput = errors.New("invalid document input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyDescription) ||
		errors.Is(err, domain.ErrInvalidSize) ||
		errors.Is(err, domain.ErrEmptyURL) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
