package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/pet-adoption-api/internal/domains/documents/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/documents/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory file metadata store.
type Repository struct {
	mu     sync.RWMutex
	files  map[int64]*projection.Projection[*domain.File]
	nextID int64
	now    func() time.Time
}

// NewRepository constructs an empty repository.
func NewRepository() *Repository {
	return &Repository{files: map[int64]*projection.Projection[*domain.File]{}, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Create stores file metadata under a new ID.
func (r *Repository) Create(_ context.Context, file *domain.File) (*projection.Projection[*domain.File], error) {
	if file == nil {
		return nil, errors.New("cannot save nil file")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *file
	stored.ID = r.nextID
	ts := r.now()
	r.files[stored.ID] = projection.New(&stored, ts, ts)
	file.ID = stored.ID
	return copyProjection(r.files[stored.ID]), nil
}

// GetByID loads file metadata.
func (r *Repository) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.File], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.files[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return copyProjection(entry), nil
}

func copyProjection(src *projection.Projection[*domain.File]) *projection.Projection[*domain.File] {
	file := *src.Entity
	return &projection.Projection[*domain.File]{Entity: &file, Metadata: src.Metadata}
}
