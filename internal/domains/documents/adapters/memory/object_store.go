package memory

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/Apurer/pet-adoption-api/internal/domains/documents/ports"
)

var _ ports.ObjectStore = (*ObjectStore)(nil)

// ObjectStore keeps uploaded blobs in memory when no bucket is configured.
type ObjectStore struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]StoredObject
}

// StoredObject is a blob captured by the in-memory store.
type StoredObject struct {
	Data        []byte
	ContentType string
}

// NewObjectStore builds a store whose URLs are rooted at baseURL.
func NewObjectStore(baseURL string) *ObjectStore {
	return &ObjectStore{baseURL: strings.TrimRight(baseURL, "/"), objects: map[string]StoredObject{}}
}

// Put reads the object body and returns its URL.
func (s *ObjectStore) Put(_ context.Context, object ports.Object) (string, error) {
	data, err := io.ReadAll(object.Body)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[object.Key] = StoredObject{Data: data, ContentType: object.ContentType}
	return s.baseURL + "/" + object.Key, nil
}

// Get returns a stored object by key.
func (s *ObjectStore) Get(key string) (StoredObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj, ok
}
