package ports

import (
	"context"

	documenttypes "github.com/Apurer/pet-adoption-api/internal/domains/documents/application/types"
)

// Service defines the document upload use cases.
type Service interface {
	Upload(ctx context.Context, input documenttypes.UploadInput) (*documenttypes.UploadResult, error)
	Get(ctx context.Context, input documenttypes.FileIdentifier) (*documenttypes.FileProjection, error)
}
