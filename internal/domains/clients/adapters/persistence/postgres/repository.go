package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/pet-adoption-api/internal/domains/clients/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/clients/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists people and clients in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type personRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;size:255"`
	Email     string    `gorm:"column:email"`
	CPF       string    `gorm:"column:cpf;index"`
	Contact   string    `gorm:"column:contact;size:20"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (personRecord) TableName() string { return "peoples" }

type clientRecord struct {
	ID        int64         `gorm:"primaryKey;column:id"`
	PersonID  int64         `gorm:"column:people_id;index"`
	Person    *personRecord `gorm:"foreignKey:PersonID"`
	Bonus     bool          `gorm:"column:bonus"`
	CreatedAt time.Time     `gorm:"column:created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at"`
}

func (clientRecord) TableName() string { return "clients" }

// CreatePerson inserts a person.
func (r *Repository) CreatePerson(ctx context.Context, person *domain.Person) (*projection.Projection[*domain.Person], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if person == nil {
		return nil, errors.New("person is nil")
	}
	if err := person.Validate(); err != nil {
		return nil, err
	}
	record := personRecord{Name: person.Name, Email: person.Email, CPF: person.CPF, Contact: person.Contact}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	person.ID = record.ID
	return projection.New(personToDomain(&record), record.CreatedAt, record.UpdatedAt), nil
}

// CreateClient inserts a client.
func (r *Repository) CreateClient(ctx context.Context, client *domain.Client) (*projection.Projection[*domain.Client], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errors.New("client is nil")
	}
	record := clientRecord{PersonID: client.PersonID, Bonus: client.Bonus}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&record).Error; err != nil {
		return nil, err
	}
	client.ID = record.ID
	return r.GetClient(ctx, record.ID)
}

// GetClient loads a client with its person.
func (r *Repository) GetClient(ctx context.Context, id int64) (*projection.Projection[*domain.Client], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record clientRecord
	if err := r.db.WithContext(ctx).Preload("Person").First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	client := &domain.Client{ID: record.ID, PersonID: record.PersonID, Bonus: record.Bonus}
	if record.Person != nil {
		client.Person = personToDomain(record.Person)
	}
	return projection.New(client, record.CreatedAt, record.UpdatedAt), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}

func personToDomain(rec *personRecord) *domain.Person {
	return &domain.Person{
		ID:      rec.ID,
		Name:    rec.Name,
		Email:   rec.Email,
		CPF:     rec.CPF,
		Contact: rec.Contact,
	}
}
