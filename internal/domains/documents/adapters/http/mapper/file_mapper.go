package mapper

import (
	"time"

	documenttypes "github.com/Apurer/pet-adoption-api/internal/domains/documents/application/types"
)

// UploadAck is the body returned after an upload.
type UploadAck struct {
	Message string `json:"message"`
}

// File is the HTTP representation of stored document metadata.
type File struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	Mime      string    `json:"mime"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromUploadResult builds the acknowledgement. File metadata is not echoed.
func FromUploadResult(result *documenttypes.UploadResult) UploadAck {
	if result == nil {
		return UploadAck{}
	}
	return UploadAck{Message: result.Message}
}

// FromProjection maps stored metadata for transport.
func FromProjection(p *documenttypes.FileProjection) File {
	if p == nil || p.Entity == nil {
		return File{}
	}
	return File{
		ID:        p.Entity.ID,
		Name:      p.Entity.Name,
		Size:      p.Entity.Size,
		Mime:      p.Entity.Mime,
		URL:       p.Entity.URL,
		CreatedAt: p.Metadata.CreatedAt,
		UpdatedAt: p.Metadata.UpdatedAt,
	}
}
