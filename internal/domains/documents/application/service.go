package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	types "github.com/Apurer/pet-adoption-api/internal/domains/documents/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/documents/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/documents/ports"
)

const (
	// UploadedMessage acknowledges a successful upload.
	UploadedMessage = "Arquivo criado com sucesso"
	// KeyPrefix is the object storage folder for uploaded documents.
	KeyPrefix = "documentos/"

	sniffLength = 3072
)

// Service stores uploaded documents in object storage and records their metadata.
type Service struct {
	repo  ports.Repository
	store ports.ObjectStore
	newID func() string
}

// Option customizes the service.
type Option func(*Service)

// WithKeyGenerator overrides the object key generator, mainly for tests.
func WithKeyGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewService wires the document service.
func NewService(repo ports.Repository, store ports.ObjectStore, opts ...Option) *Service {
	s := &Service{repo: repo, store: store, newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload sniffs the content type, stores the object under a random key and records its metadata.
func (s *Service) Upload(ctx context.Context, input types.UploadInput) (*types.UploadResult, error) {
	if input.Content == nil {
		return nil, fmt.Errorf("%w: file content is required", ErrInvalidInput)
	}
	head := make([]byte, sniffLength)
	n, err := io.ReadFull(input.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	extension := detected.Extension()
	if extension == "" {
		extension = filepath.Ext(input.Filename)
	}
	name, err := domain.FileName(input.Description, extension)
	if err != nil {
		return nil, mapError(err)
	}

	body := io.MultiReader(bytes.NewReader(head), input.Content)
	size := input.Size
	if size <= 0 {
		buffered, err := io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		size = int64(len(buffered))
		body = bytes.NewReader(buffered)
	}
	url, err := s.store.Put(ctx, ports.Object{
		Key:         KeyPrefix + s.newID() + extension,
		Body:        body,
		Size:        size,
		ContentType: detected.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	file, err := domain.NewFile(name, size, detected.String(), url)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, file)
	if err != nil {
		return nil, mapError(err)
	}
	return &types.UploadResult{Message: UploadedMessage, File: saved}, nil
}

// Get returns the metadata of a stored document.
func (s *Service) Get(ctx context.Context, input types.FileIdentifier) (*types.FileProjection, error) {
	return s.repo.GetByID(ctx, input.ID)
}

var _ ports.Service = (*Service)(nil)
