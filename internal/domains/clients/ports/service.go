package ports

import (
	"context"

	clienttypes "github.com/Apurer/pet-adoption-api/internal/domains/clients/application/types"
)

// Service defines the client registry use cases exposed to adapters.
type Service interface {
	GetClient(ctx context.Context, input clienttypes.ClientIdentifier) (*clienttypes.ClientProjection, error)
}
