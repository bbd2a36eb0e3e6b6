package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
	"github.com/Apurer/pet-adoption-api/internal/shared/undo"
)

var _ ports.SolicitationRepository = (*SolicitationRepository)(nil)

// SolicitationRepository keeps document solicitations in memory.
type SolicitationRepository struct {
	mu    sync.RWMutex
	items map[string]*projection.Projection[*domain.Solicitation]
	now   func() time.Time
}

// NewSolicitationRepository constructs an empty repository.
func NewSolicitationRepository() *SolicitationRepository {
	return &SolicitationRepository{items: map[string]*projection.Projection[*domain.Solicitation]{}, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *SolicitationRepository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Create stores a solicitation. Ids are assigned by the caller.
func (r *SolicitationRepository) Create(_ context.Context, s *domain.Solicitation) (*projection.Projection[*domain.Solicitation], error) {
	if s == nil {
		return nil, errors.New("cannot save nil solicitation")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[s.ID]; exists {
		return nil, errors.New("solicitation already exists")
	}
	ts := r.now()
	r.items[s.ID] = projection.New(s.Clone(), ts, ts)
	return copySolicitation(r.items[s.ID]), nil
}

// GetByID loads a solicitation.
func (r *SolicitationRepository) GetByID(_ context.Context, id string) (*projection.Projection[*domain.Solicitation], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.items[id]
	if !ok {
		return nil, ports.ErrSolicitationNotFound
	}
	return copySolicitation(entry), nil
}

// Update replaces a stored solicitation.
func (r *SolicitationRepository) Update(_ context.Context, s *domain.Solicitation) (*projection.Projection[*domain.Solicitation], error) {
	if s == nil {
		return nil, errors.New("cannot save nil solicitation")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.items[s.ID]
	if !ok {
		return nil, ports.ErrSolicitationNotFound
	}
	r.items[s.ID] = projection.New(s.Clone(), entry.Metadata.CreatedAt, r.now())
	return copySolicitation(r.items[s.ID]), nil
}

// Journal returns a view of the repository whose writes are recorded in log.
func (r *SolicitationRepository) Journal(log *undo.Log) ports.SolicitationRepository {
	return &journaledSolicitations{SolicitationRepository: r, log: log}
}

type journaledSolicitations struct {
	*SolicitationRepository
	log *undo.Log
}

func (j *journaledSolicitations) Create(ctx context.Context, s *domain.Solicitation) (*projection.Projection[*domain.Solicitation], error) {
	created, err := j.SolicitationRepository.Create(ctx, s)
	if err != nil {
		return nil, err
	}
	id := created.Entity.ID
	j.log.Record(func() {
		j.mu.Lock()
		defer j.mu.Unlock()
		delete(j.items, id)
	})
	return created, nil
}

func (j *journaledSolicitations) Update(_ context.Context, s *domain.Solicitation) (*projection.Projection[*domain.Solicitation], error) {
	if s == nil {
		return nil, errors.New("cannot save nil solicitation")
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	previous, ok := j.items[s.ID]
	if !ok {
		return nil, ports.ErrSolicitationNotFound
	}
	updated := projection.New(s.Clone(), previous.Metadata.CreatedAt, j.now())
	j.items[s.ID] = updated
	j.log.Record(func() {
		j.mu.Lock()
		defer j.mu.Unlock()
		if j.items[s.ID] == updated {
			j.items[s.ID] = previous
		}
	})
	return copySolicitation(updated), nil
}

func copySolicitation(src *projection.Projection[*domain.Solicitation]) *projection.Projection[*domain.Solicitation] {
	return &projection.Projection[*domain.Solicitation]{Entity: src.Entity.Clone(), Metadata: src.Metadata}
}
