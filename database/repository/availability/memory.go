package availability

import (
	"context"
	"sync"

	"receptionist/models"
)

// MemoryRepo is an in-memory Repository for tests and local development
// without Redis.
type MemoryRepo struct {
	mu        sync.RWMutex
	snapshot  *models.AvailabilitySnapshot
	lastEvent *models.CalendarEvent
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (m *MemoryRepo) SaveAvailability(_ context.Context, snap models.AvailabilitySnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = &snap
	return nil
}

func (m *MemoryRepo) GetAvailability(_ context.Context) (*models.AvailabilitySnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot, nil
}

func (m *MemoryRepo) SaveLastEvent(_ context.Context, event models.CalendarEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastEvent = &event
	return nil
}

func (m *MemoryRepo) GetLastEvent(_ context.Context) (*models.CalendarEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastEvent, nil
}
