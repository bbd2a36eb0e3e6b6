package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adoptionmemory "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/memory"
	types "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	clientmemory "github.com/Apurer/pet-adoption-api/internal/domains/clients/adapters/memory"
	documentmemory "github.com/Apurer/pet-adoption-api/internal/domains/documents/adapters/memory"
	documentdomain "github.com/Apurer/pet-adoption-api/internal/domains/documents/domain"
	documentsports "github.com/Apurer/pet-adoption-api/internal/domains/documents/ports"
	petmemory "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/memory"
	petdomain "github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	petsports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/undo"
	"github.com/Apurer/pet-adoption-api/internal/shared/validation"
)

type recordingNotifier struct {
	events []domain.AdoptionApproved
	err    error
}

func (n *recordingNotifier) NotifyApproval(_ context.Context, event domain.AdoptionApproved) error {
	n.events = append(n.events, event)
	return n.err
}

type fixture struct {
	svc           *Service
	adoptions     *adoptionmemory.Repository
	solicitations *adoptionmemory.SolicitationRepository
	clients       *clientmemory.Repository
	pets          *petmemory.Repository
	files         *documentmemory.Repository
	uow           *adoptionmemory.UnitOfWork
	notifier      *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		adoptions:     adoptionmemory.NewRepository(),
		solicitations: adoptionmemory.NewSolicitationRepository(),
		clients:       clientmemory.NewRepository(),
		pets:          petmemory.NewRepository(),
		files:         documentmemory.NewRepository(),
		notifier:      &recordingNotifier{},
	}
	f.uow = adoptionmemory.NewUnitOfWork(f.adoptions, f.solicitations, adoptionmemory.NewIdempotencyStore(), f.clients, f.pets)
	ids := 0
	f.svc = NewService(Dependencies{
		Adoptions:     f.adoptions,
		Solicitations: f.solicitations,
		Pets:          f.pets,
		Files:         f.files,
		UnitOfWork:    f.uow,
	}, WithNotifier(f.notifier), WithIDGenerator(func() string {
		ids++
		return []string{"sol-1", "sol-2", "sol-3", "sol-4"}[ids-1]
	}))
	return f
}

func (f *fixture) seedPet(t *testing.T, name string) int64 {
	t.Helper()
	pet, err := petdomain.NewPet(name, 3, 10, petdomain.SizeMedium)
	require.NoError(t, err)
	saved, err := f.pets.Save(context.Background(), pet)
	require.NoError(t, err)
	return saved.Entity.ID
}

func (f *fixture) request(t *testing.T, name, email string, petID int64) *types.AdoptionProjection {
	t.Helper()
	saved, err := f.svc.Request(context.Background(), types.RequestAdoptionInput{
		Name: name, Contact: "41999999999", Email: email, CPF: "08917989948", Observations: "Tenho quintal", PetID: petID,
	})
	require.NoError(t, err)
	return saved
}

func TestRequest_StoresPending(t *testing.T) {
	f := newFixture(t)

	saved := f.request(t, "Maria", "maria@x.com", 99)

	assert.Equal(t, int64(1), saved.Entity.ID)
	assert.Equal(t, domain.StatusPending, saved.Entity.Status)
	assert.Equal(t, int64(99), saved.Entity.PetID)
}

func TestParseRequestAdoption_EmptyPayload(t *testing.T) {
	_, err := ParseRequestAdoption(validation.Payload{})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 6)
	assert.Equal(t, "The name field is required. (and 5 more errors)", verrs.Summary())
	assert.Equal(t, "pet_id", verrs[5].Field)
	assert.Equal(t, "The pet id field is required.", verrs[5].Message)
}

func TestParseRequestAdoption_TypesAndLength(t *testing.T) {
	_, err := ParseRequestAdoption(validation.Payload{
		"name":         "Maria",
		"contact":      "012345678901234567890",
		"email":        "maria@x.com",
		"cpf":          "123",
		"observations": "ok",
		"pet_id":       "abc",
	})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 2)
	assert.Equal(t, "The contact field must not be greater than 20 characters.", verrs[0].Message)
	assert.Equal(t, "The pet id field must be an integer.", verrs[1].Message)
	assert.Equal(t, "The contact field must not be greater than 20 characters. (and 1 more error)", verrs.Summary())
}

func TestParseApproveAdoption(t *testing.T) {
	input, err := ParseApproveAdoption(validation.Payload{"adoption_id": 7}, "key-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), input.AdoptionID)
	assert.Equal(t, "key-1", input.IdempotencyKey)

	_, err = ParseApproveAdoption(validation.Payload{}, "")
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "The adoption id field is required.", verrs.Summary())
}

func TestList_FiltersAndJoinsPets(t *testing.T) {
	f := newFixture(t)
	thor := f.seedPet(t, "Thor")
	f.request(t, "Maria", "maria@x.com", thor)
	f.request(t, "João", "joao@y.com", 404)

	all, err := f.svc.List(context.Background(), types.ListAdoptionsInput{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Maria", all[0].Adoption.Entity.Name)
	require.NotNil(t, all[0].Pet)
	assert.Equal(t, "Thor", all[0].Pet.Name)
	assert.Nil(t, all[1].Pet)

	filtered, err := f.svc.List(context.Background(), types.ListAdoptionsInput{Search: "Y.COM"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "João", filtered[0].Adoption.Entity.Name)
}

func TestApprove_CreatesClientAndLinksPet(t *testing.T) {
	f := newFixture(t)
	petID := f.seedPet(t, "Thor")
	adoption := f.request(t, "Maria", "maria@x.com", petID)

	result, err := f.svc.Approve(context.Background(), types.ApproveAdoptionInput{AdoptionID: adoption.Entity.ID})

	require.NoError(t, err)
	require.NotNil(t, result.Client)
	assert.True(t, result.Client.Entity.Bonus)
	require.NotNil(t, result.Client.Entity.Person)
	assert.Equal(t, "maria@x.com", result.Client.Entity.Person.Email)
	assert.False(t, result.Replayed)
	assert.NoError(t, result.NotificationError)

	stored, err := f.adoptions.GetByID(context.Background(), adoption.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, stored.Entity.Status)

	pet, err := f.pets.GetByID(context.Background(), petID)
	require.NoError(t, err)
	assert.False(t, pet.Entity.IsAvailable())

	solicitation, err := f.solicitations.GetByID(context.Background(), "sol-1")
	require.NoError(t, err)
	assert.Equal(t, result.Client.Entity.ID, solicitation.Entity.ClientID)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, "sol-1", f.notifier.events[0].SolicitationID)
	assert.Equal(t, "Maria", f.notifier.events[0].Name)
}

func TestApprove_UnknownAdoption(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Approve(context.Background(), types.ApproveAdoptionInput{AdoptionID: 42})
	require.ErrorIs(t, err, ports.ErrNotFound)

	_, err = f.svc.Approve(context.Background(), types.ApproveAdoptionInput{AdoptionID: 0})
	require.ErrorIs(t, err, ports.ErrNotFound)
	assert.Empty(t, f.notifier.events)
}

func TestApprove_MissingPetRollsBack(t *testing.T) {
	f := newFixture(t)
	adoption := f.request(t, "Maria", "maria@x.com", 404)

	_, err := f.svc.Approve(context.Background(), types.ApproveAdoptionInput{AdoptionID: adoption.Entity.ID})

	require.ErrorIs(t, err, petsports.ErrNotFound)
	stored, err := f.adoptions.GetByID(context.Background(), adoption.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Entity.Status)
	people, clients := f.clients.Count()
	assert.Zero(t, people)
	assert.Zero(t, clients)
	assert.Empty(t, f.notifier.events)
}

var errLinkInterrupted = errors.New("link interrupted")

// interleavingPets links the pet, runs during() and then fails the approval.
type interleavingPets struct {
	*petmemory.Repository
	during func()
}

func (p *interleavingPets) Journal(log *undo.Log) petsports.Ownership {
	return linkThenFail{inner: p.Repository.Journal(log), during: p.during}
}

type linkThenFail struct {
	inner  petsports.Ownership
	during func()
}

func (l linkThenFail) AssignOwner(ctx context.Context, petID, clientID int64) error {
	if err := l.inner.AssignOwner(ctx, petID, clientID); err != nil {
		return err
	}
	l.during()
	return errLinkInterrupted
}

func TestApprove_RollbackKeepsWritesMadeOutsideTheApproval(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	petID := f.seedPet(t, "Thor")
	drew := f.request(t, "Drew", "drew@x.com", petID)

	var concurrentID, newPetID int64
	pets := &interleavingPets{Repository: f.pets, during: func() {
		concurrentID = f.request(t, "Concurrent", "concurrent@x.com", petID).Entity.ID
		newPetID = f.seedPet(t, "NewPet")
	}}
	idempotency := adoptionmemory.NewIdempotencyStore()
	svc := NewService(Dependencies{
		Adoptions:     f.adoptions,
		Solicitations: f.solicitations,
		Pets:          f.pets,
		Files:         f.files,
		UnitOfWork:    adoptionmemory.NewUnitOfWork(f.adoptions, f.solicitations, idempotency, f.clients, pets),
	}, WithIDGenerator(func() string { return "sol-x" }))

	_, err := svc.Approve(ctx, types.ApproveAdoptionInput{AdoptionID: drew.Entity.ID, IdempotencyKey: "approve-drew"})
	require.ErrorIs(t, err, errLinkInterrupted)

	all, err := f.adoptions.Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, drew.Entity.ID, all[0].Entity.ID)
	assert.Equal(t, domain.StatusPending, all[0].Entity.Status)
	assert.Equal(t, concurrentID, all[1].Entity.ID)

	thor, err := f.pets.GetByID(ctx, petID)
	require.NoError(t, err)
	assert.True(t, thor.Entity.IsAvailable())
	_, err = f.pets.GetByID(ctx, newPetID)
	require.NoError(t, err)

	people, clients := f.clients.Count()
	assert.Zero(t, people)
	assert.Zero(t, clients)
	_, err = f.solicitations.GetByID(ctx, "sol-x")
	require.ErrorIs(t, err, ports.ErrNotFound)
	record, err := idempotency.Get(ctx, "approve-drew")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestApprove_ReapprovalDuplicatesClient(t *testing.T) {
	f := newFixture(t)
	adoption := f.request(t, "Maria", "maria@x.com", f.seedPet(t, "Thor"))

	first, err := f.svc.Approve(context.Background(), types.ApproveAdoptionInput{AdoptionID: adoption.Entity.ID})
	require.NoError(t, err)
	second, err := f.svc.Approve(context.Background(), types.ApproveAdoptionInput{AdoptionID: adoption.Entity.ID})
	require.NoError(t, err)

	assert.NotEqual(t, first.Client.Entity.ID, second.Client.Entity.ID)
	people, clients := f.clients.Count()
	assert.Equal(t, 2, people)
	assert.Equal(t, 2, clients)
	pet, err := f.pets.GetByID(context.Background(), adoption.Entity.PetID)
	require.NoError(t, err)
	require.NotNil(t, pet.Entity.ClientID)
	assert.Equal(t, second.Client.Entity.ID, *pet.Entity.ClientID)
}

func TestApprove_IdempotentReplay(t *testing.T) {
	f := newFixture(t)
	adoption := f.request(t, "Maria", "maria@x.com", f.seedPet(t, "Thor"))
	input := types.ApproveAdoptionInput{AdoptionID: adoption.Entity.ID, IdempotencyKey: "approve-1"}

	first, err := f.svc.Approve(context.Background(), input)
	require.NoError(t, err)
	replayed, err := f.svc.Approve(context.Background(), input)
	require.NoError(t, err)

	assert.True(t, replayed.Replayed)
	assert.Equal(t, first.Client.Entity.ID, replayed.Client.Entity.ID)
	require.NotNil(t, replayed.Solicitation)
	assert.Equal(t, "sol-1", replayed.Solicitation.Entity.ID)
	people, clients := f.clients.Count()
	assert.Equal(t, 1, people)
	assert.Equal(t, 1, clients)
	assert.Len(t, f.notifier.events, 1)
}

func TestApprove_IdempotencyConflict(t *testing.T) {
	f := newFixture(t)
	a := f.request(t, "Maria", "maria@x.com", f.seedPet(t, "Thor"))
	b := f.request(t, "João", "joao@x.com", f.seedPet(t, "Mia"))

	_, err := f.svc.Approve(context.Background(), types.ApproveAdoptionInput{AdoptionID: a.Entity.ID, IdempotencyKey: "k"})
	require.NoError(t, err)
	_, err = f.svc.Approve(context.Background(), types.ApproveAdoptionInput{AdoptionID: b.Entity.ID, IdempotencyKey: "k"})

	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	stored, err := f.adoptions.GetByID(context.Background(), b.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Entity.Status)
}

// staleIdempotency misses keys that a concurrent approval has already stored.
type staleIdempotency struct {
	ports.IdempotencyStore
}

func (staleIdempotency) Get(context.Context, string) (*ports.ApprovalRecord, error) {
	return nil, nil
}

// racingUnitOfWork hands the first attempt a stale idempotency lookup.
type racingUnitOfWork struct {
	inner    ports.UnitOfWork
	attempts int
}

func (u *racingUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, repos ports.TxRepositories) error) error {
	u.attempts++
	stale := u.attempts == 1
	return u.inner.Within(ctx, func(ctx context.Context, repos ports.TxRepositories) error {
		if stale {
			repos.Idempotency = staleIdempotency{IdempotencyStore: repos.Idempotency}
		}
		return fn(ctx, repos)
	})
}

func TestApprove_KeyTakenDuringApprovalReplays(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	adoption := f.request(t, "Maria", "maria@x.com", f.seedPet(t, "Thor"))
	input := types.ApproveAdoptionInput{AdoptionID: adoption.Entity.ID, IdempotencyKey: "approve-1"}
	first, err := f.svc.Approve(ctx, input)
	require.NoError(t, err)

	racing := &racingUnitOfWork{inner: f.uow}
	svc := NewService(Dependencies{
		Adoptions:     f.adoptions,
		Solicitations: f.solicitations,
		Pets:          f.pets,
		Files:         f.files,
		UnitOfWork:    racing,
	}, WithIDGenerator(func() string { return "sol-race" }))

	replayed, err := svc.Approve(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, 2, racing.attempts)
	assert.True(t, replayed.Replayed)
	assert.Equal(t, first.Client.Entity.ID, replayed.Client.Entity.ID)
	people, clients := f.clients.Count()
	assert.Equal(t, 1, people)
	assert.Equal(t, 1, clients)
	_, err = f.solicitations.GetByID(ctx, "sol-race")
	require.ErrorIs(t, err, ports.ErrNotFound)
	pet, err := f.pets.GetByID(ctx, adoption.Entity.PetID)
	require.NoError(t, err)
	require.NotNil(t, pet.Entity.ClientID)
	assert.Equal(t, first.Client.Entity.ID, *pet.Entity.ClientID)
}

func TestApprove_KeyTakenByDifferentRequestConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.request(t, "Maria", "maria@x.com", f.seedPet(t, "Thor"))
	b := f.request(t, "João", "joao@x.com", f.seedPet(t, "Mia"))
	_, err := f.svc.Approve(ctx, types.ApproveAdoptionInput{AdoptionID: a.Entity.ID, IdempotencyKey: "k"})
	require.NoError(t, err)

	racing := &racingUnitOfWork{inner: f.uow}
	svc := NewService(Dependencies{
		Adoptions:     f.adoptions,
		Solicitations: f.solicitations,
		Pets:          f.pets,
		Files:         f.files,
		UnitOfWork:    racing,
	}, WithIDGenerator(func() string { return "sol-race" }))

	_, err = svc.Approve(ctx, types.ApproveAdoptionInput{AdoptionID: b.Entity.ID, IdempotencyKey: "k"})
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	assert.Equal(t, 2, racing.attempts)
	stored, err := f.adoptions.GetByID(ctx, b.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Entity.Status)
}

func TestApprove_NotificationFailureIsReported(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("smtp down")
	adoption := f.request(t, "Maria", "maria@x.com", f.seedPet(t, "Thor"))

	result, err := f.svc.Approve(context.Background(), types.ApproveAdoptionInput{AdoptionID: adoption.Entity.ID})

	require.NoError(t, err)
	require.NotNil(t, result.Client)
	assert.EqualError(t, result.NotificationError, "smtp down")
}

func TestAttachDocuments(t *testing.T) {
	f := newFixture(t)
	adoption := f.request(t, "Maria", "maria@x.com", f.seedPet(t, "Thor"))
	_, err := f.svc.Approve(context.Background(), types.ApproveAdoptionInput{AdoptionID: adoption.Entity.ID})
	require.NoError(t, err)

	file, err := documentdomain.NewFile("rg.pdf", 10, "application/pdf", "http://files/rg.pdf")
	require.NoError(t, err)
	saved, err := f.files.Create(context.Background(), file)
	require.NoError(t, err)

	missing := int64(999)
	_, err = f.svc.AttachDocuments(context.Background(), types.AttachDocumentsInput{ID: "sol-1", Documents: domain.Documents{CPF: &missing}})
	require.ErrorIs(t, err, documentsports.ErrNotFound)

	rg := saved.Entity.ID
	updated, err := f.svc.AttachDocuments(context.Background(), types.AttachDocumentsInput{ID: "sol-1", Documents: domain.Documents{RG: &rg}})
	require.NoError(t, err)
	require.NotNil(t, updated.Entity.RG)
	assert.Equal(t, rg, *updated.Entity.RG)
	assert.Nil(t, updated.Entity.CPF)

	_, err = f.svc.AttachDocuments(context.Background(), types.AttachDocumentsInput{ID: "nope"})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestParseAttachDocuments(t *testing.T) {
	input, err := ParseAttachDocuments("sol-1", validation.Payload{"cpf": 3, "term_adoption": "4"})
	require.NoError(t, err)
	require.NotNil(t, input.CPF)
	assert.Equal(t, int64(3), *input.CPF)
	require.NotNil(t, input.TermAdoption)
	assert.Equal(t, int64(4), *input.TermAdoption)
	assert.Nil(t, input.RG)

	_, err = ParseAttachDocuments("sol-1", validation.Payload{"rg": "x"})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "The rg field must be an integer.", verrs.Summary())
}
