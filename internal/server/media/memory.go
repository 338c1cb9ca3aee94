package media

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/storehub/internal/common"
)

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryImageStore is an ImageStore for local runs without object storage.
// Its URLs use the memory:// scheme and are not fetchable.
type MemoryImageStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

func NewMemoryImageStore() *MemoryImageStore {
	return &MemoryImageStore{objects: make(map[string]memoryObject)}
}

func (m *MemoryImageStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: append([]byte(nil), data...), contentType: contentType}
	return nil
}

func (m *MemoryImageStore) PresignGet(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.objects[key]; !ok {
		return "", common.ErrorNotFound
	}
	return "memory://" + key, nil
}

// Get returns the stored bytes and content type of key.
func (m *MemoryImageStore) Get(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objects[key]
	return o.data, o.contentType, ok
}
