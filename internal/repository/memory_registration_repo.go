package repository

import (
	"context"
	"sync"
)

// memoryRegistrationRepository is the in-process fallback backend, used when
// the durable store is unreachable. Records do not survive a restart. The
// mutex is required: the server handles requests in parallel, and duplicate
// detection needs at-most-one-writer-per-key.
type memoryRegistrationRepository struct {
	mu            sync.RWMutex
	registrations map[string]*Registration
}

func NewMemoryRegistrationRepository() RegistrationRepository {
	return &memoryRegistrationRepository{
		registrations: make(map[string]*Registration),
	}
}

func (m *memoryRegistrationRepository) Create(_ context.Context, reg *Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Reject duplicates, matching the durable backend's unique index.
	if _, ok := m.registrations[reg.TeamID]; ok {
		return ErrAlreadyExists
	}

	stored := *reg
	m.registrations[reg.TeamID] = &stored

	return nil
}

func (m *memoryRegistrationRepository) Get(_ context.Context, teamID string) (*Registration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reg, ok := m.registrations[teamID]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *reg
	return &copied, nil
}
