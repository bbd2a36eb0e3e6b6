package ports

import (
	"context"
	"errors"
	"io"

	"github.com/Apurer/pet-adoption-api/internal/domains/documents/domain"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var ErrNotFound = errors.New("document not found")

// Repository stores uploaded file metadata.
type Repository interface {
	Lookup
	Create(ctx context.Context, file *domain.File) (*projection.Projection[*domain.File], error)
}

// Lookup resolves stored files for contexts that reference them by id.
type Lookup interface {
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.File], error)
}

// Object is a blob handed to object storage.
type Object struct {
	Key         string
	Body        io.Reader
	Size        int64
	ContentType string
}

// ObjectStore persists blobs and returns the URL they can be fetched from.
type ObjectStore interface {
	Put(ctx context.Context, object Object) (string, error)
}
