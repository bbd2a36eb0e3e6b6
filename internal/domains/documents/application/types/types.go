package types

import (
	"io"

	"github.com/Apurer/pet-adoption-api/internal/domains/documents/domain"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

// FileProjection transports file metadata with persistence timestamps.
type FileProjection = projection.Projection[*domain.File]

// FileIdentifier addresses stored document metadata.
type FileIdentifier struct {
	ID int64
}

// UploadInput carries an uploaded document. Content is read once.
type UploadInput struct {
	Description string
	Filename    string
	Size        int64
	Content     io.Reader
}

// UploadResult is returned after the object and its metadata are stored.
type UploadResult struct {
	Message string
	File    *FileProjection
}
