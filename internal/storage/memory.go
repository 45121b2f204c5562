package storage

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"
)

// MemoryObject is an object held by MemoryStorage.
type MemoryObject struct {
	ContentType string
	Body        []byte
}

// MemoryStorage is an in-process FileStorage for local runs and tests.
// Download URLs use the memory:// scheme and are not fetchable over HTTP.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]MemoryObject
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string]MemoryObject)}
}

func (m *MemoryStorage) PutObject(_ context.Context, objectKey string, contentType string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(body))
	copy(stored, body)
	m.objects[objectKey] = MemoryObject{ContentType: contentType, Body: stored}
	return nil
}

func (m *MemoryStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, expires time.Duration) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.objects[objectKey]; !ok {
		return "", fmt.Errorf("%w: %s", ErrObjectNotFound, objectKey)
	}
	if expires <= 0 {
		expires = DefaultPresignedURLExpiry
	}
	u := url.URL{Scheme: "memory", Path: "/" + objectKey, RawQuery: url.Values{"expires": {expires.String()}}.Encode()}
	return u.String(), nil
}

func (m *MemoryStorage) DeleteObject(_ context.Context, objectKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[objectKey]; !ok {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, objectKey)
	}
	delete(m.objects, objectKey)
	return nil
}

// Object returns a stored object.
func (m *MemoryStorage) Object(objectKey string) (MemoryObject, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[objectKey]
	return obj, ok
}

// Keys lists the stored object keys in no particular order.
func (m *MemoryStorage) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.objects))
	for key := range m.objects {
		keys = append(keys, key)
	}
	return keys
}
