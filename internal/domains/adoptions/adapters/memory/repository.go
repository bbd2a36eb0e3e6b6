package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
	"github.com/Apurer/pet-adoption-api/internal/shared/undo"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps adoption requests in memory.
type Repository struct {
	mu        sync.RWMutex
	adoptions map[int64]*projection.Projection[*domain.Adoption]
	nextID    int64
	now       func() time.Time
}

// NewRepository constructs an empty repository.
func NewRepository() *Repository {
	return &Repository{adoptions: map[int64]*projection.Projection[*domain.Adoption]{}, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Create stores a new request under the next id.
func (r *Repository) Create(_ context.Context, adoption *domain.Adoption) (*projection.Projection[*domain.Adoption], error) {
	if adoption == nil {
		return nil, errors.New("cannot save nil adoption")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := adoption.Clone()
	stored.ID = r.nextID
	ts := r.now()
	r.adoptions[stored.ID] = projection.New(stored, ts, ts)
	adoption.ID = stored.ID
	return copyAdoption(r.adoptions[stored.ID]), nil
}

// GetByID loads a request.
func (r *Repository) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.Adoption], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.adoptions[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return copyAdoption(entry), nil
}

// GetForUpdate loads a request. Writers are serialized by the unit of work.
func (r *Repository) GetForUpdate(ctx context.Context, id int64) (*projection.Projection[*domain.Adoption], error) {
	return r.GetByID(ctx, id)
}

// Update replaces a stored request and bumps its updated_at.
func (r *Repository) Update(_ context.Context, adoption *domain.Adoption) (*projection.Projection[*domain.Adoption], error) {
	if adoption == nil {
		return nil, errors.New("cannot save nil adoption")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.adoptions[adoption.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	r.adoptions[adoption.ID] = projection.New(adoption.Clone(), entry.Metadata.CreatedAt, r.now())
	return copyAdoption(r.adoptions[adoption.ID]), nil
}

// Search filters requests in id order.
func (r *Repository) Search(_ context.Context, search string) ([]*projection.Projection[*domain.Adoption], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*projection.Projection[*domain.Adoption], 0, len(r.adoptions))
	for _, entry := range r.adoptions {
		if entry.Entity.MatchesSearch(search) {
			result = append(result, copyAdoption(entry))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Entity.ID < result[j].Entity.ID })
	return result, nil
}

// Journal returns a view of the repository whose writes are recorded in log.
func (r *Repository) Journal(log *undo.Log) ports.Repository {
	return &journaledRepository{Repository: r, log: log}
}

type journaledRepository struct {
	*Repository
	log *undo.Log
}

func (j *journaledRepository) Create(ctx context.Context, adoption *domain.Adoption) (*projection.Projection[*domain.Adoption], error) {
	created, err := j.Repository.Create(ctx, adoption)
	if err != nil {
		return nil, err
	}
	id := created.Entity.ID
	j.log.Record(func() {
		j.mu.Lock()
		defer j.mu.Unlock()
		delete(j.adoptions, id)
	})
	return created, nil
}

func (j *journaledRepository) Update(_ context.Context, adoption *domain.Adoption) (*projection.Projection[*domain.Adoption], error) {
	if adoption == nil {
		return nil, errors.New("cannot save nil adoption")
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	previous, ok := j.adoptions[adoption.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	updated := projection.New(adoption.Clone(), previous.Metadata.CreatedAt, j.now())
	j.adoptions[adoption.ID] = updated
	j.log.Record(func() {
		j.mu.Lock()
		defer j.mu.Unlock()
		if j.adoptions[adoption.ID] == updated {
			j.adoptions[adoption.ID] = previous
		}
	})
	return copyAdoption(updated), nil
}

func copyAdoption(src *projection.Projection[*domain.Adoption]) *projection.Projection[*domain.Adoption] {
	return &projection.Projection[*domain.Adoption]{Entity: src.Entity.Clone(), Metadata: src.Metadata}
}
