package types

import (
	"github.com/Apurer/pet-adoption-api/internal/domains/clients/domain"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

// ClientProjection transports a client with its persistence metadata.
type ClientProjection = projection.Projection[*domain.Client]

// ClientIdentifier addresses a single client.
type ClientIdentifier struct {
	ID int64
}
