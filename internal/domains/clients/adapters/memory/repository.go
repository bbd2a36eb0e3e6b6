package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/pet-adoption-api/internal/domains/clients/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/clients/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
	"github.com/Apurer/pet-adoption-api/internal/shared/undo"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps people and clients in memory for demos and tests.
type Repository struct {
	mu           sync.RWMutex
	people       map[int64]storedPerson
	clients      map[int64]storedClient
	nextPersonID int64
	nextClientID int64
	now          func() time.Time
}

type storedPerson struct {
	person   domain.Person
	metadata projection.Metadata
}

type storedClient struct {
	client   domain.Client
	metadata projection.Metadata
}

// NewRepository constructs an empty registry.
func NewRepository() *Repository {
	return &Repository{
		people:  map[int64]storedPerson{},
		clients: map[int64]storedClient{},
		now:     time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// CreatePerson stores a new person.
func (r *Repository) CreatePerson(_ context.Context, person *domain.Person) (*projection.Projection[*domain.Person], error) {
	if person == nil {
		return nil, errors.New("cannot save nil person")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextPersonID++
	stored := *person
	stored.ID = r.nextPersonID
	ts := r.now()
	r.people[stored.ID] = storedPerson{person: stored, metadata: projection.Metadata{CreatedAt: ts, UpdatedAt: ts}}
	person.ID = stored.ID
	return projection.New(&stored, ts, ts), nil
}

// CreateClient stores a new client for an existing person.
func (r *Repository) CreateClient(_ context.Context, client *domain.Client) (*projection.Projection[*domain.Client], error) {
	if client == nil {
		return nil, errors.New("cannot save nil client")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.people[client.PersonID]; !ok {
		return nil, domain.ErrInvalidOwner
	}
	r.nextClientID++
	stored := *client
	stored.ID = r.nextClientID
	stored.Person = nil
	ts := r.now()
	entry := storedClient{client: stored, metadata: projection.Metadata{CreatedAt: ts, UpdatedAt: ts}}
	r.clients[stored.ID] = entry
	client.ID = stored.ID
	return r.clientView(entry), nil
}

// GetClient loads a client with its person.
func (r *Repository) GetClient(_ context.Context, id int64) (*projection.Projection[*domain.Client], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.clients[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.clientView(entry), nil
}

// Count returns the number of stored people and clients.
func (r *Repository) Count() (people, clients int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.people), len(r.clients)
}

// Journal returns a view of the registry whose writes are recorded in log.
func (r *Repository) Journal(log *undo.Log) ports.Repository {
	return &journaledRepository{Repository: r, log: log}
}

type journaledRepository struct {
	*Repository
	log *undo.Log
}

func (j *journaledRepository) CreatePerson(ctx context.Context, person *domain.Person) (*projection.Projection[*domain.Person], error) {
	created, err := j.Repository.CreatePerson(ctx, person)
	if err != nil {
		return nil, err
	}
	id := created.Entity.ID
	j.log.Record(func() {
		j.mu.Lock()
		defer j.mu.Unlock()
		delete(j.people, id)
	})
	return created, nil
}

func (j *journaledRepository) CreateClient(ctx context.Context, client *domain.Client) (*projection.Projection[*domain.Client], error) {
	created, err := j.Repository.CreateClient(ctx, client)
	if err != nil {
		return nil, err
	}
	id := created.Entity.ID
	j.log.Record(func() {
		j.mu.Lock()
		defer j.mu.Unlock()
		delete(j.clients, id)
	})
	return created, nil
}

func (r *Repository) clientView(entry storedClient) *projection.Projection[*domain.Client] {
	client := entry.client
	if person, ok := r.people[client.PersonID]; ok {
		p := person.person
		client.Person = &p
	}
	return &projection.Projection[*domain.Client]{Entity: &client, Metadata: entry.metadata}
}
