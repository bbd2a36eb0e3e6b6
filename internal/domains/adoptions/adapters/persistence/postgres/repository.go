package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	platformpostgres "github.com/Apurer/pet-adoption-api/internal/platform/postgres"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists adoption requests in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type adoptionRecord struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	Name         string    `gorm:"column:name;size:255"`
	Contact      string    `gorm:"column:contact;size:20"`
	Email        string    `gorm:"column:email"`
	CPF          string    `gorm:"column:cpf"`
	Observations string    `gorm:"column:observations"`
	PetID        int64     `gorm:"column:pet_id;index"`
	Status       string    `gorm:"column:status;size:20"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (adoptionRecord) TableName() string { return "adoptions" }

// Create inserts a request.
func (r *Repository) Create(ctx context.Context, adoption *domain.Adoption) (*projection.Projection[*domain.Adoption], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if adoption == nil {
		return nil, errors.New("adoption is nil")
	}
	record := toRecord(adoption)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	adoption.ID = record.ID
	return toProjection(&record), nil
}

// GetByID loads a request.
func (r *Repository) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Adoption], error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate loads a request with SELECT ... FOR UPDATE. Only meaningful inside a transaction.
func (r *Repository) GetForUpdate(ctx context.Context, id int64) (*projection.Projection[*domain.Adoption], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *Repository) get(ctx context.Context, db *gorm.DB, id int64) (*projection.Projection[*domain.Adoption], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record adoptionRecord
	if err := db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// Update writes every mutable column of the request.
func (r *Repository) Update(ctx context.Context, adoption *domain.Adoption) (*projection.Projection[*domain.Adoption], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if adoption == nil {
		return nil, errors.New("adoption is nil")
	}
	res := r.db.WithContext(ctx).Model(&adoptionRecord{}).Where("id = ?", adoption.ID).Updates(map[string]any{
		"name":         adoption.Name,
		"contact":      adoption.Contact,
		"email":        adoption.Email,
		"cpf":          adoption.CPF,
		"observations": adoption.Observations,
		"pet_id":       adoption.PetID,
		"status":       string(adoption.Status),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, adoption.ID)
}

// Search matches name, email, contact and status with ILIKE, in id order.
func (r *Repository) Search(ctx context.Context, search string) ([]*projection.Projection[*domain.Adoption], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&adoptionRecord{})
	if term := strings.TrimSpace(search); term != "" {
		like := platformpostgres.ContainsPattern(term)
		query = query.Where("name ILIKE ? OR email ILIKE ? OR contact ILIKE ? OR status ILIKE ?", like, like, like, like)
	}
	var records []adoptionRecord
	if err := query.Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*projection.Projection[*domain.Adoption], 0, len(records))
	for i := range records {
		result = append(result, toProjection(&records[i]))
	}
	return result, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}

func toRecord(a *domain.Adoption) adoptionRecord {
	return adoptionRecord{
		ID:           a.ID,
		Name:         a.Name,
		Contact:      a.Contact,
		Email:        a.Email,
		CPF:          a.CPF,
		Observations: a.Observations,
		PetID:        a.PetID,
		Status:       string(a.Status),
	}
}

func toProjection(rec *adoptionRecord) *projection.Projection[*domain.Adoption] {
	return projection.New(&domain.Adoption{
		ID:           rec.ID,
		Name:         rec.Name,
		Contact:      rec.Contact,
		Email:        rec.Email,
		CPF:          rec.CPF,
		Observations: rec.Observations,
		PetID:        rec.PetID,
		Status:       domain.Status(rec.Status),
	}, rec.CreatedAt, rec.UpdatedAt)
}
