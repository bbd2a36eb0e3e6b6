package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
	"github.com/Apurer/pet-adoption-api/internal/shared/undo"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for demos/tests.
type Repository struct {
	mu      sync.RWMutex
	pets    map[int64]*storedPet
	breeds  map[int64]domain.Breed
	species map[int64]domain.Specie
	nextID  int64
	nextRef int64
	now     func() time.Time
}

type storedPet struct {
	pet      *domain.Pet
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		pets:    map[int64]*storedPet{},
		breeds:  map[int64]domain.Breed{},
		species: map[int64]domain.Specie{},
		now:     time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save inserts or replaces a pet while maintaining metadata. A zero ID allocates a new one.
func (r *Repository) Save(_ context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error) {
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := pet.Clone()
	if stored.ID == 0 {
		r.nextID++
		stored.ID = r.nextID
	} else if stored.ID > r.nextID {
		r.nextID = stored.ID
	}
	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if entry, ok := r.pets[stored.ID]; ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	}
	entry := &storedPet{pet: stored, metadata: metadata}
	r.pets[stored.ID] = entry
	pet.ID = stored.ID
	return r.projectionCopy(entry), nil
}

// GetByID fetches a pet if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.Pet], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.pets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.projectionCopy(entry), nil
}

// ListAvailable returns unowned pets matching filter ordered by creation time, newest first.
func (r *Repository) ListAvailable(_ context.Context, filter domain.Filter) ([]*projection.Projection[*domain.Pet], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*projection.Projection[*domain.Pet], 0, len(r.pets))
	for _, entry := range r.pets {
		view := r.projectionCopy(entry)
		if !view.Entity.IsAvailable() || !filter.Matches(view.Entity) {
			continue
		}
		result = append(result, view)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].Metadata.CreatedAt, result[j].Metadata.CreatedAt
		if a.Equal(b) {
			return result[i].Entity.ID > result[j].Entity.ID
		}
		return a.After(b)
	})
	return result, nil
}

// AssignOwner links a pet to the adopting client.
func (r *Repository) AssignOwner(_ context.Context, petID, clientID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.pets[petID]
	if !ok {
		return ports.ErrNotFound
	}
	if err := entry.pet.AssignOwner(clientID); err != nil {
		return err
	}
	entry.metadata.UpdatedAt = r.now()
	return nil
}

// FindByIDs returns the pets that exist among ids.
func (r *Repository) FindByIDs(_ context.Context, ids []int64) (map[int64]*domain.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make(map[int64]*domain.Pet, len(ids))
	for _, id := range ids {
		if entry, ok := r.pets[id]; ok {
			result[id] = r.hydrate(entry.pet)
		}
	}
	return result, nil
}

// SaveBreed stores a breed, allocating an ID when needed.
func (r *Repository) SaveBreed(_ context.Context, breed *domain.Breed) (*domain.Breed, error) {
	if breed == nil {
		return nil, errors.New("cannot save nil breed")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *breed
	if stored.ID == 0 {
		r.nextRef++
		stored.ID = r.nextRef
	}
	r.breeds[stored.ID] = stored
	return &stored, nil
}

// GetBreed loads a breed by ID.
func (r *Repository) GetBreed(_ context.Context, id int64) (*domain.Breed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	breed, ok := r.breeds[id]
	if !ok {
		return nil, ports.ErrBreedNotFound
	}
	return &breed, nil
}

// SaveSpecie stores a specie, allocating an ID when needed.
func (r *Repository) SaveSpecie(_ context.Context, specie *domain.Specie) (*domain.Specie, error) {
	if specie == nil {
		return nil, errors.New("cannot save nil specie")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *specie
	if stored.ID == 0 {
		r.nextRef++
		stored.ID = r.nextRef
	}
	r.species[stored.ID] = stored
	return &stored, nil
}

// GetSpecie loads a specie by ID.
func (r *Repository) GetSpecie(_ context.Context, id int64) (*domain.Specie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	specie, ok := r.species[id]
	if !ok {
		return nil, ports.ErrSpecieNotFound
	}
	return &specie, nil
}

// Journal returns an ownership view whose assignments are recorded in log.
func (r *Repository) Journal(log *undo.Log) ports.Ownership {
	return &journaledOwnership{repo: r, log: log}
}

type journaledOwnership struct {
	repo *Repository
	log  *undo.Log
}

func (j *journaledOwnership) AssignOwner(_ context.Context, petID, clientID int64) error {
	r := j.repo
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.pets[petID]
	if !ok {
		return ports.ErrNotFound
	}
	previousOwner := copyOwner(entry.pet.ClientID)
	previousUpdatedAt := entry.metadata.UpdatedAt
	if err := entry.pet.AssignOwner(clientID); err != nil {
		return err
	}
	entry.metadata.UpdatedAt = r.now()
	j.log.Record(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.pets[petID] != entry {
			return
		}
		entry.pet.ClientID = previousOwner
		entry.metadata.UpdatedAt = previousUpdatedAt
	})
	return nil
}

func copyOwner(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// hydrate refreshes breed and specie names from the reference tables.
func (r *Repository) hydrate(pet *domain.Pet) *domain.Pet {
	copy := pet.Clone()
	if copy.BreedID != nil {
		if breed, ok := r.breeds[*copy.BreedID]; ok {
			copy.Breed = &breed
		}
	}
	if copy.SpecieID != nil {
		if specie, ok := r.species[*copy.SpecieID]; ok {
			copy.Specie = &specie
		}
	}
	return copy
}

func (r *Repository) projectionCopy(entry *storedPet) *projection.Projection[*domain.Pet] {
	return &projection.Projection[*domain.Pet]{
		Entity:   r.hydrate(entry.pet),
		Metadata: entry.metadata,
	}
}
