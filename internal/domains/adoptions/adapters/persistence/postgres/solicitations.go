package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var _ ports.SolicitationRepository = (*SolicitationRepository)(nil)

// SolicitationRepository persists document solicitations.
type SolicitationRepository struct {
	db *gorm.DB
}

// NewSolicitationRepository wires a PostgreSQL-backed repository.
func NewSolicitationRepository(db *gorm.DB) *SolicitationRepository {
	return &SolicitationRepository{db: db}
}

type solicitationRecord struct {
	ID              string    `gorm:"primaryKey;column:id;type:uuid"`
	ClientID        int64     `gorm:"column:client_id;index"`
	CPF             *int64    `gorm:"column:cpf"`
	RG              *int64    `gorm:"column:rg"`
	DocumentAddress *int64    `gorm:"column:document_address"`
	TermAdoption    *int64    `gorm:"column:term_adoption"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (solicitationRecord) TableName() string { return "solicitations_documents" }

// Create inserts a solicitation with its caller-assigned id.
func (r *SolicitationRepository) Create(ctx context.Context, s *domain.Solicitation) (*projection.Projection[*domain.Solicitation], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.New("solicitation is nil")
	}
	record := toSolicitationRecord(s)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return toSolicitationProjection(&record), nil
}

// GetByID loads a solicitation.
func (r *SolicitationRepository) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Solicitation], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record solicitationRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrSolicitationNotFound
		}
		return nil, err
	}
	return toSolicitationProjection(&record), nil
}

// Update writes the document references.
func (r *SolicitationRepository) Update(ctx context.Context, s *domain.Solicitation) (*projection.Projection[*domain.Solicitation], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.New("solicitation is nil")
	}
	res := r.db.WithContext(ctx).Model(&solicitationRecord{}).Where("id = ?", s.ID).Updates(map[string]any{
		"cpf":              s.CPF,
		"rg":               s.RG,
		"document_address": s.DocumentAddress,
		"term_adoption":    s.TermAdoption,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ports.ErrSolicitationNotFound
	}
	return r.GetByID(ctx, s.ID)
}

func (r *SolicitationRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres solicitation repository not configured")
	}
	return nil
}

func toSolicitationRecord(s *domain.Solicitation) solicitationRecord {
	return solicitationRecord{
		ID:              s.ID,
		ClientID:        s.ClientID,
		CPF:             s.CPF,
		RG:              s.RG,
		DocumentAddress: s.DocumentAddress,
		TermAdoption:    s.TermAdoption,
	}
}

func toSolicitationProjection(rec *solicitationRecord) *projection.Projection[*domain.Solicitation] {
	s := &domain.Solicitation{ID: rec.ID, ClientID: rec.ClientID}
	s.Attach(domain.Documents{
		CPF:             rec.CPF,
		RG:              rec.RG,
		DocumentAddress: rec.DocumentAddress,
		TermAdoption:    rec.TermAdoption,
	})
	return projection.New(s, rec.CreatedAt, rec.UpdatedAt)
}
