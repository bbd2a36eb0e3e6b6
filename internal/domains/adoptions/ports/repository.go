package ports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	clientsports "github.com/Apurer/pet-adoption-api/internal/domains/clients/ports"
	petsports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var (
	ErrNotFound             = errors.New("adoption not found")
	ErrSolicitationNotFound = fmt.Errorf("solicitation: %w", ErrNotFound)
	// ErrIdempotencyConflict indicates a key was reused for a different request.
	ErrIdempotencyConflict = errors.New("idempotency conflict")
	// ErrIdempotencyKeyTaken reports that Save lost the race for a key stored concurrently.
	ErrIdempotencyKeyTaken = fmt.Errorf("%w: key already recorded", ErrIdempotencyConflict)
)

// Repository persists adoption requests.
type Repository interface {
	Create(ctx context.Context, adoption *domain.Adoption) (*projection.Projection[*domain.Adoption], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Adoption], error)
	// GetForUpdate loads the request and locks it until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*projection.Projection[*domain.Adoption], error)
	Update(ctx context.Context, adoption *domain.Adoption) (*projection.Projection[*domain.Adoption], error)
	// Search returns requests matching search ordered by id ascending.
	Search(ctx context.Context, search string) ([]*projection.Projection[*domain.Adoption], error)
}

// SolicitationRepository persists document solicitations.
type SolicitationRepository interface {
	Create(ctx context.Context, solicitation *domain.Solicitation) (*projection.Projection[*domain.Solicitation], error)
	GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Solicitation], error)
	Update(ctx context.Context, solicitation *domain.Solicitation) (*projection.Projection[*domain.Solicitation], error)
}

// ApprovalRecord binds an Idempotency-Key to the approval it produced.
type ApprovalRecord struct {
	Key            string
	RequestHash    string
	AdoptionID     int64
	ClientID       int64
	SolicitationID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IdempotencyStore persists approval keys so retries can be replayed.
type IdempotencyStore interface {
	// Get returns the record for key, or nil when unknown.
	Get(ctx context.Context, key string) (*ApprovalRecord, error)
	// Save stores a new record and returns ErrIdempotencyKeyTaken when the key exists.
	Save(ctx context.Context, record ApprovalRecord) error
}

// DefaultIdempotencyKeyTTL is how long approval keys are kept before they may be purged.
const DefaultIdempotencyKeyTTL = 24 * time.Hour

// IdempotencyPurger removes expired approval keys.
type IdempotencyPurger interface {
	PurgeExpired(ctx context.Context, ttl time.Duration) (int64, error)
}

// TxRepositories are the repositories bound to one approval transaction.
type TxRepositories struct {
	Adoptions     Repository
	Solicitations SolicitationRepository
	Idempotency   IdempotencyStore
	Clients       clientsports.Repository
	Pets          petsports.Ownership
}

// UnitOfWork runs fn atomically: every write made through repos is rolled back when fn fails.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
