package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/undo"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore provides an in-memory implementation for development and tests.
type IdempotencyStore struct {
	mu      sync.RWMutex
	records map[string]ports.ApprovalRecord
	now     func() time.Time
}

// NewIdempotencyStore constructs an empty in-memory store.
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{records: map[string]ports.ApprovalRecord{}, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (s *IdempotencyStore) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Get returns the stored record for the provided key, or nil when absent.
func (s *IdempotencyStore) Get(_ context.Context, key string) (*ports.ApprovalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	copy := record
	return &copy, nil
}

// Save persists a new record.
func (s *IdempotencyStore) Save(_ context.Context, record ports.ApprovalRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.Key]; ok {
		return ports.ErrIdempotencyKeyTaken
	}
	ts := s.now()
	record.CreatedAt, record.UpdatedAt = ts, ts
	s.records[record.Key] = record
	return nil
}

// PurgeExpired drops records created more than ttl ago.
func (s *IdempotencyStore) PurgeExpired(_ context.Context, ttl time.Duration) (int64, error) {
	if ttl <= 0 {
		ttl = ports.DefaultIdempotencyKeyTTL
	}
	cutoff := s.now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged int64
	for key, record := range s.records {
		if record.CreatedAt.Before(cutoff) {
			delete(s.records, key)
			purged++
		}
	}
	return purged, nil
}

// Journal returns a view of the store whose saves are recorded in log.
func (s *IdempotencyStore) Journal(log *undo.Log) ports.IdempotencyStore {
	return &journaledIdempotency{IdempotencyStore: s, log: log}
}

type journaledIdempotency struct {
	*IdempotencyStore
	log *undo.Log
}

func (j *journaledIdempotency) Save(ctx context.Context, record ports.ApprovalRecord) error {
	if err := j.IdempotencyStore.Save(ctx, record); err != nil {
		return err
	}
	j.log.Record(func() {
		j.mu.Lock()
		defer j.mu.Unlock()
		delete(j.records, record.Key)
	})
	return nil
}
