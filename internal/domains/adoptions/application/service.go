package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	types "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	clientdomain "github.com/Apurer/pet-adoption-api/internal/domains/clients/domain"
	documentsports "github.com/Apurer/pet-adoption-api/internal/domains/documents/ports"
	petsports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
)

// Dependencies are the collaborators the adoption service needs.
type Dependencies struct {
	Adoptions     ports.Repository
	Solicitations ports.SolicitationRepository
	Pets          petsports.Directory
	Files         documentsports.Lookup
	UnitOfWork    ports.UnitOfWork
}

// Service implements intake, review, approval and document solicitation.
type Service struct {
	deps     Dependencies
	notifier ports.Notifier
	newID    func() string
	now      func() time.Time
}

// Option customizes the service.
type Option func(*Service)

// WithNotifier sets the post-approval notifier.
func WithNotifier(n ports.Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithIDGenerator overrides the solicitation id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithClock overrides the time source used for events.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the adoption service.
func NewService(deps Dependencies, opts ...Option) *Service {
	s := &Service{deps: deps, newID: uuid.NewString, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request records a new PENDENTE adoption request.
func (s *Service) Request(ctx context.Context, input types.RequestAdoptionInput) (*types.AdoptionProjection, error) {
	adoption, err := domain.NewAdoption(input.Name, input.Contact, input.Email, input.CPF, input.Observations, input.PetID)
	if err != nil {
		return nil, mapError(err)
	}
	return s.deps.Adoptions.Create(ctx, adoption)
}

// List returns every request matching the search with its pet.
func (s *Service) List(ctx context.Context, input types.ListAdoptionsInput) ([]*types.AdoptionView, error) {
	adoptions, err := s.deps.Adoptions.Search(ctx, input.Search)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(adoptions))
	seen := make(map[int64]struct{}, len(adoptions))
	for _, a := range adoptions {
		if _, ok := seen[a.Entity.PetID]; ok {
			continue
		}
		seen[a.Entity.PetID] = struct{}{}
		ids = append(ids, a.Entity.PetID)
	}
	pets, err := s.deps.Pets.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]*types.AdoptionView, 0, len(adoptions))
	for _, a := range adoptions {
		views = append(views, &types.AdoptionView{Adoption: a, Pet: pets[a.Entity.PetID]})
	}
	return views, nil
}

// Approve promotes a request into a client that owns the pet, in one transaction.
// The notification runs after commit and its failure is reported, not returned.
func (s *Service) Approve(ctx context.Context, input types.ApproveAdoptionInput) (*types.ApprovalResult, error) {
	if input.AdoptionID <= 0 {
		return nil, ports.ErrNotFound
	}
	key := strings.TrimSpace(input.IdempotencyKey)
	hash, err := FingerprintApproval(input)
	if err != nil {
		return nil, err
	}

	result, event, err := s.approveWithin(ctx, input, key, hash)
	if errors.Is(err, ports.ErrIdempotencyKeyTaken) && key != "" {
		// A concurrent approval stored the key after our lookup; the retry replays it.
		result, event, err = s.approveWithin(ctx, input, key, hash)
	}
	if err != nil {
		return nil, err
	}

	if event != nil && s.notifier != nil {
		result.NotificationError = s.notifier.NotifyApproval(ctx, *event)
	}
	return result, nil
}

func (s *Service) approveWithin(ctx context.Context, input types.ApproveAdoptionInput, key, hash string) (*types.ApprovalResult, *domain.AdoptionApproved, error) {
	result := &types.ApprovalResult{}
	var event *domain.AdoptionApproved
	err := s.deps.UnitOfWork.Within(ctx, func(ctx context.Context, repos ports.TxRepositories) error {
		if key != "" {
			record, err := repos.Idempotency.Get(ctx, key)
			if err != nil {
				return err
			}
			if record != nil {
				if record.RequestHash != hash {
					return ports.ErrIdempotencyConflict
				}
				return replay(ctx, repos, record, result)
			}
		}

		adoption, err := repos.Adoptions.GetForUpdate(ctx, input.AdoptionID)
		if err != nil {
			return err
		}
		adoption.Entity.Approve()
		if _, err := repos.Adoptions.Update(ctx, adoption.Entity); err != nil {
			return err
		}

		person, err := clientdomain.NewPerson(adoption.Entity.Name, adoption.Entity.Email, adoption.Entity.CPF, adoption.Entity.Contact)
		if err != nil {
			return mapError(err)
		}
		savedPerson, err := repos.Clients.CreatePerson(ctx, person)
		if err != nil {
			return err
		}
		client, err := clientdomain.NewClient(savedPerson.Entity.ID)
		if err != nil {
			return mapError(err)
		}
		savedClient, err := repos.Clients.CreateClient(ctx, client)
		if err != nil {
			return err
		}
		savedClient.Entity.Person = savedPerson.Entity

		if err := repos.Pets.AssignOwner(ctx, adoption.Entity.PetID, savedClient.Entity.ID); err != nil {
			return fmt.Errorf("link pet %d: %w", adoption.Entity.PetID, err)
		}

		solicitation, err := domain.NewSolicitation(s.newID(), savedClient.Entity.ID)
		if err != nil {
			return mapError(err)
		}
		savedSolicitation, err := repos.Solicitations.Create(ctx, solicitation)
		if err != nil {
			return err
		}

		if key != "" {
			if err := repos.Idempotency.Save(ctx, ports.ApprovalRecord{
				Key:            key,
				RequestHash:    hash,
				AdoptionID:     adoption.Entity.ID,
				ClientID:       savedClient.Entity.ID,
				SolicitationID: savedSolicitation.Entity.ID,
			}); err != nil {
				return err
			}
		}

		result.Client = savedClient
		result.Solicitation = savedSolicitation
		event = &domain.AdoptionApproved{
			BaseEvent:      domain.BaseEvent{Timestamp: s.now()},
			AdoptionID:     adoption.Entity.ID,
			PetID:          adoption.Entity.PetID,
			ClientID:       savedClient.Entity.ID,
			SolicitationID: savedSolicitation.Entity.ID,
			Name:           savedPerson.Entity.Name,
			Email:          savedPerson.Entity.Email,
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return result, event, nil
}

func replay(ctx context.Context, repos ports.TxRepositories, record *ports.ApprovalRecord, result *types.ApprovalResult) error {
	client, err := repos.Clients.GetClient(ctx, record.ClientID)
	if err != nil {
		return err
	}
	result.Client = client
	result.Replayed = true
	if record.SolicitationID == "" {
		return nil
	}
	solicitation, err := repos.Solicitations.GetByID(ctx, record.SolicitationID)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return err
	}
	result.Solicitation = solicitation
	return nil
}

// GetSolicitation loads a solicitation by id.
func (s *Service) GetSolicitation(ctx context.Context, id types.SolicitationIdentifier) (*types.SolicitationProjection, error) {
	if strings.TrimSpace(id.ID) == "" {
		return nil, ports.ErrSolicitationNotFound
	}
	return s.deps.Solicitations.GetByID(ctx, id.ID)
}

// AttachDocuments links uploaded files to a solicitation. Every referenced file must exist.
func (s *Service) AttachDocuments(ctx context.Context, input types.AttachDocumentsInput) (*types.SolicitationProjection, error) {
	current, err := s.GetSolicitation(ctx, types.SolicitationIdentifier{ID: input.ID})
	if err != nil {
		return nil, err
	}
	for _, fileID := range input.Documents.IDs() {
		if _, err := s.deps.Files.GetByID(ctx, fileID); err != nil {
			return nil, fmt.Errorf("attach file %d: %w", fileID, err)
		}
	}
	current.Entity.Attach(input.Documents)
	return s.deps.Solicitations.Update(ctx, current.Entity)
}

var _ ports.Service = (*Service)(nil)
