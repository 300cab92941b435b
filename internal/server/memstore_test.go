package server

import (
	"sync"

	"github.com/clearday/clearday/internal/storage"
	"github.com/clearday/clearday/internal/streak"
	"github.com/clearday/clearday/pkg/sobriety"
)

type memStore struct {
	mu       sync.RWMutex
	profiles map[string]sobriety.Profile
	resets   map[string][]sobriety.ResetEvent
}

func newMemStore() *memStore {
	return &memStore{
		profiles: map[string]sobriety.Profile{},
		resets:   map[string][]sobriety.ResetEvent{},
	}
}

func (m *memStore) PutProfile(userID string, p sobriety.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.profiles[userID] = p
	return nil
}

func (m *memStore) GetProfile(userID string) (*sobriety.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memStore) PutResetEvent(userID string, e sobriety.ResetEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.resets[userID] = append(m.resets[userID], e)
	return nil
}

func (m *memStore) LatestResetEvent(userID string) (*sobriety.ResetEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return streak.MostRecentReset(m.resets[userID]), nil
}

func (m *memStore) ListResetEvents(userID string) ([]sobriety.ResetEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]sobriety.ResetEvent(nil), m.resets[userID]...), nil
}

func (m *memStore) Close() error {
	return nil
}

var _ storage.Store = (*memStore)(nil)
