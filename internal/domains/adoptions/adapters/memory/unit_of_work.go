package memory

import (
	"context"
	"sync"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	clientsports "github.com/Apurer/pet-adoption-api/internal/domains/clients/ports"
	petsports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/undo"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// ClientStore is a client repository whose writes can be journaled.
type ClientStore interface {
	clientsports.Repository
	Journal(log *undo.Log) clientsports.Repository
}

// PetStore is a pet ownership port whose assignments can be journaled.
type PetStore interface {
	petsports.Ownership
	Journal(log *undo.Log) petsports.Ownership
}

// UnitOfWork serializes approvals. A failed approval reverts only its own writes,
// so requests and pets stored concurrently outside the unit survive the rollback.
type UnitOfWork struct {
	mu            sync.Mutex
	adoptions     *Repository
	solicitations *SolicitationRepository
	idempotency   *IdempotencyStore
	clients       ClientStore
	pets          PetStore
}

// NewUnitOfWork groups the in-memory stores touched by an approval.
func NewUnitOfWork(adoptions *Repository, solicitations *SolicitationRepository, idempotency *IdempotencyStore, clients ClientStore, pets PetStore) *UnitOfWork {
	return &UnitOfWork{
		adoptions:     adoptions,
		solicitations: solicitations,
		idempotency:   idempotency,
		clients:       clients,
		pets:          pets,
	}
}

// Within runs fn holding the unit lock and undoes its writes on error.
func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, repos ports.TxRepositories) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	log := &undo.Log{}
	repos := ports.TxRepositories{
		Adoptions:     u.adoptions.Journal(log),
		Solicitations: u.solicitations.Journal(log),
		Idempotency:   u.idempotency.Journal(log),
		Clients:       u.clients.Journal(log),
		Pets:          u.pets.Journal(log),
	}
	if err := fn(ctx, repos); err != nil {
		log.Rollback()
		return err
	}
	return nil
}
