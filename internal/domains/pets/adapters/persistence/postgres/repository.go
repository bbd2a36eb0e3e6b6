package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	platformpostgres "github.com/Apurer/pet-adoption-api/internal/platform/postgres"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists pets in PostgreSQL using GORM-mapped columns.
// The schema is owned by platform/migrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle,
// which may be a transaction handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type breedRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;size:255"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (breedRecord) TableName() string { return "breeds" }

type specieRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;size:255"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (specieRecord) TableName() string { return "species" }

type petRecord struct {
	ID        int64         `gorm:"primaryKey;column:id"`
	Name      string        `gorm:"column:name;size:255"`
	Age       int           `gorm:"column:age"`
	Weight    float64       `gorm:"column:weight"`
	Size      string        `gorm:"column:size;type:varchar(16)"`
	BreedID   *int64        `gorm:"column:breed_id;index"`
	Breed     *breedRecord  `gorm:"foreignKey:BreedID"`
	SpecieID  *int64        `gorm:"column:specie_id;index"`
	Specie    *specieRecord `gorm:"foreignKey:SpecieID"`
	ClientID  *int64        `gorm:"column:client_id;index"`
	CreatedAt time.Time     `gorm:"column:created_at;index"`
	UpdatedAt time.Time     `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

// Save inserts a new pet or updates an existing one.
func (r *Repository) Save(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	record := toRecord(pet)
	db := r.db.WithContext(ctx).Omit(clause.Associations)
	if record.ID != 0 {
		db = db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":       record.Name,
				"age":        record.Age,
				"weight":     record.Weight,
				"size":       record.Size,
				"breed_id":   record.BreedID,
				"specie_id":  record.SpecieID,
				"client_id":  record.ClientID,
				"updated_at": gorm.Expr("NOW()"),
			}),
		})
	}
	if err := db.Create(&record).Error; err != nil {
		return nil, err
	}
	pet.ID = record.ID
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a pet with its breed and specie.
func (r *Repository) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record petRecord
	if err := r.db.WithContext(ctx).
		Preload("Breed").
		Preload("Specie").
		First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// ListAvailable returns unowned pets matching the filter, newest first.
func (r *Repository) ListAvailable(ctx context.Context, filter domain.Filter) ([]*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).
		Preload("Breed").
		Preload("Specie").
		Where("pets.client_id IS NULL")
	if filter.Age != nil {
		query = query.Where("pets.age = ?", *filter.Age)
	}
	if filter.Size != nil {
		query = query.Where("pets.size = ?", string(*filter.Size))
	}
	if filter.Weight != nil {
		query = query.Where("pets.weight = ?", *filter.Weight)
	}
	if filter.SpecieID != nil {
		query = query.Where("pets.specie_id = ?", *filter.SpecieID)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		like := platformpostgres.ContainsPattern(term)
		query = query.Where(
			"(pets.name ILIKE ? OR CAST(pets.age AS TEXT) ILIKE ? OR CAST(pets.weight AS TEXT) ILIKE ? "+
				"OR EXISTS (SELECT 1 FROM breeds WHERE breeds.id = pets.breed_id AND breeds.name ILIKE ?))",
			like, like, like, like,
		)
	}
	var records []petRecord
	if err := query.Order("pets.created_at DESC").Order("pets.id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*projection.Projection[*domain.Pet], 0, len(records))
	for i := range records {
		result = append(result, toProjection(&records[i]))
	}
	return result, nil
}

// AssignOwner links the pet to a client.
func (r *Repository) AssignOwner(ctx context.Context, petID, clientID int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if clientID <= 0 {
		return domain.ErrInvalidOwner
	}
	result := r.db.WithContext(ctx).
		Model(&petRecord{}).
		Where("id = ?", petID).
		Updates(map[string]any{"client_id": clientID})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// FindByIDs loads every pet among ids, including adopted ones.
func (r *Repository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Pet, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := make(map[int64]*domain.Pet, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).Preload("Breed").Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	for i := range records {
		result[records[i].ID] = toDomain(&records[i])
	}
	return result, nil
}

// SaveBreed inserts a breed.
func (r *Repository) SaveBreed(ctx context.Context, breed *domain.Breed) (*domain.Breed, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if breed == nil {
		return nil, errors.New("cannot save nil breed")
	}
	record := breedRecord{ID: breed.ID, Name: breed.Name}
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	return &domain.Breed{ID: record.ID, Name: record.Name}, nil
}

// GetBreed loads a breed by ID.
func (r *Repository) GetBreed(ctx context.Context, id int64) (*domain.Breed, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record breedRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrBreedNotFound
		}
		return nil, err
	}
	return &domain.Breed{ID: record.ID, Name: record.Name}, nil
}

// SaveSpecie inserts a specie.
func (r *Repository) SaveSpecie(ctx context.Context, specie *domain.Specie) (*domain.Specie, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if specie == nil {
		return nil, errors.New("cannot save nil specie")
	}
	record := specieRecord{ID: specie.ID, Name: specie.Name}
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	return &domain.Specie{ID: record.ID, Name: record.Name}, nil
}

// GetSpecie loads a specie by ID.
func (r *Repository) GetSpecie(ctx context.Context, id int64) (*domain.Specie, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record specieRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrSpecieNotFound
		}
		return nil, err
	}
	return &domain.Specie{ID: record.ID, Name: record.Name}, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}

func toRecord(p *domain.Pet) petRecord {
	return petRecord{
		ID:       p.ID,
		Name:     p.Name,
		Age:      p.Age,
		Weight:   p.Weight,
		Size:     string(p.Size),
		BreedID:  p.BreedID,
		SpecieID: p.SpecieID,
		ClientID: p.ClientID,
	}
}

func toDomain(rec *petRecord) *domain.Pet {
	pet := &domain.Pet{
		ID:       rec.ID,
		Name:     rec.Name,
		Age:      rec.Age,
		Weight:   rec.Weight,
		Size:     domain.Size(rec.Size),
		BreedID:  rec.BreedID,
		SpecieID: rec.SpecieID,
		ClientID: rec.ClientID,
	}
	if rec.Breed != nil {
		pet.Breed = &domain.Breed{ID: rec.Breed.ID, Name: rec.Breed.Name}
	}
	if rec.Specie != nil {
		pet.Specie = &domain.Specie{ID: rec.Specie.ID, Name: rec.Specie.Name}
	}
	return pet
}

func toProjection(rec *petRecord) *projection.Projection[*domain.Pet] {
	return projection.New(toDomain(rec), rec.CreatedAt, rec.UpdatedAt)
}
