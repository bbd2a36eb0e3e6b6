package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/pet-adoption-api/internal/domains/documents/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/documents/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists uploaded file metadata using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type fileRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;size:255"`
	Size      int64     `gorm:"column:size"`
	Mime      string    `gorm:"column:mime;size:255"`
	URL       string    `gorm:"column:url;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (fileRecord) TableName() string { return "files" }

// Create inserts file metadata.
func (r *Repository) Create(ctx context.Context, file *domain.File) (*projection.Projection[*domain.File], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, errors.New("file is nil")
	}
	record := fileRecord{Name: file.Name, Size: file.Size, Mime: file.Mime, URL: file.URL}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	file.ID = record.ID
	return toProjection(&record), nil
}

// GetByID loads file metadata.
func (r *Repository) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.File], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record fileRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}

func toProjection(rec *fileRecord) *projection.Projection[*domain.File] {
	file := &domain.File{ID: rec.ID, Name: rec.Name, Size: rec.Size, Mime: rec.Mime, URL: rec.URL}
	return projection.New(file, rec.CreatedAt, rec.UpdatedAt)
}
