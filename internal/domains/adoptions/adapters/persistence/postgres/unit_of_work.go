package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	clientspostgres "github.com/Apurer/pet-adoption-api/internal/domains/clients/adapters/persistence/postgres"
	petspostgres "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/persistence/postgres"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork runs approvals inside one database transaction.
type UnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork wires the transactional boundary.
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Within opens a transaction and binds every repository to it. GORM commits
// when fn returns nil and rolls back otherwise.
func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, repos ports.TxRepositories) error) error {
	if u == nil || u.db == nil {
		return errors.New("postgres unit of work not configured")
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, ports.TxRepositories{
			Adoptions:     NewRepository(tx),
			Solicitations: NewSolicitationRepository(tx),
			Idempotency:   NewIdempotencyStore(tx),
			Clients:       clientspostgres.NewRepository(tx),
			Pets:          petspostgres.NewRepository(tx),
		})
	})
}
