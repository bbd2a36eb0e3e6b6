package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore persists approval keys in PostgreSQL.
type IdempotencyStore struct {
	db *gorm.DB
}

// NewIdempotencyStore wires a PostgreSQL-backed idempotency store.
func NewIdempotencyStore(db *gorm.DB) *IdempotencyStore {
	return &IdempotencyStore{db: db}
}

type idempotencyRecord struct {
	Key            string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash    string    `gorm:"column:request_hash;size:128"`
	AdoptionID     int64     `gorm:"column:adoption_id"`
	ClientID       int64     `gorm:"column:client_id"`
	SolicitationID string    `gorm:"column:solicitation_id"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (idempotencyRecord) TableName() string { return "adoption_idempotency_keys" }

// Get loads a record by key, returning nil when absent.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.ApprovalRecord, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record idempotencyRecord
	if err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ports.ApprovalRecord{
		Key:            record.Key,
		RequestHash:    record.RequestHash,
		AdoptionID:     record.AdoptionID,
		ClientID:       record.ClientID,
		SolicitationID: record.SolicitationID,
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}, nil
}

// Save inserts the record. ON CONFLICT DO NOTHING keeps the surrounding
// transaction usable when a concurrent approval claimed the key first.
func (s *IdempotencyStore) Save(ctx context.Context, rec ports.ApprovalRecord) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	record := idempotencyRecord{
		Key:            rec.Key,
		RequestHash:    rec.RequestHash,
		AdoptionID:     rec.AdoptionID,
		ClientID:       rec.ClientID,
		SolicitationID: rec.SolicitationID,
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrIdempotencyKeyTaken
	}
	return nil
}

// PurgeExpired deletes keys older than ttl and reports how many were removed.
func (s *IdempotencyStore) PurgeExpired(ctx context.Context, ttl time.Duration) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	if ttl <= 0 {
		ttl = ports.DefaultIdempotencyKeyTTL
	}
	res := s.db.WithContext(ctx).Where("created_at < ?", time.Now().Add(-ttl)).Delete(&idempotencyRecord{})
	return res.RowsAffected, res.Error
}

func (s *IdempotencyStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres idempotency store not configured")
	}
	return nil
}
