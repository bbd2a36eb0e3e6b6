package ports

import (
	"context"
	"errors"

	"github.com/Apurer/pet-adoption-api/internal/domains/clients/domain"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var ErrNotFound = errors.New("client not found")

// Repository stores people and the clients referencing them.
type Repository interface {
	CreatePerson(ctx context.Context, person *domain.Person) (*projection.Projection[*domain.Person], error)
	CreateClient(ctx context.Context, client *domain.Client) (*projection.Projection[*domain.Client], error)
	// GetClient loads a client with its person populated.
	GetClient(ctx context.Context, id int64) (*projection.Projection[*domain.Client], error)
}
