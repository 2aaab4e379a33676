package mocks

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/lobbyregistry/internal/dependencies/identity"
)

// MockIdentity is a mock implementation of identity.Generator for testing.
// Queued ids are handed out in order; once exhausted it falls back to random ids.
type MockIdentity struct {
	mu    sync.Mutex
	queue []uuid.UUID
	index int
}

// Ensure MockIdentity implements Generator
var _ identity.Generator = (*MockIdentity)(nil)

// NewMockIdentity creates a MockIdentity with the given ids queued
func NewMockIdentity(ids ...uuid.UUID) *MockIdentity {
	return &MockIdentity{queue: ids}
}

// NewID returns the next queued id, or a random one if none remain
func (m *MockIdentity) NewID() uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.index >= len(m.queue) {
		return uuid.New()
	}
	id := m.queue[m.index]
	m.index++
	return id
}

// Queue adds ids to the result queue
func (m *MockIdentity) Queue(ids ...uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, ids...)
}

// Reset clears all queued ids
func (m *MockIdentity) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = nil
	m.index = 0
}
