package blob

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"ledgerchat/internal/domain"
)

// Memory is an in-process content-addressed store for tests and local runs.
type Memory struct {
	mu      sync.RWMutex
	objects map[domain.ContentID][]byte
}

// NewMemory returns an empty in-memory blob store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[domain.ContentID][]byte)}
}

// Put stores the bytes under their content identifier. Re-putting identical
// content yields the same identifier.
func (m *Memory) Put(ctx context.Context, name string, data []byte) (domain.ContentID, error) {
	id := ContentID(data)
	m.mu.Lock()
	m.objects[id] = append([]byte(nil), data...)
	m.mu.Unlock()
	return id, nil
}

// Get returns previously stored bytes; ok is false for unknown identifiers.
func (m *Memory) Get(id domain.ContentID) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[id]
	return data, ok
}

// ContentID derives the identifier for a payload: hex SHA-256 of the bytes.
func ContentID(data []byte) domain.ContentID {
	sum := sha256.Sum256(data)
	return domain.ContentID(hex.EncodeToString(sum[:]))
}

// Compile-time assertion that Memory implements domain.BlobStore.
var _ domain.BlobStore = (*Memory)(nil)
