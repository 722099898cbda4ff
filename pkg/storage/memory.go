package storage

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu         sync.Mutex
	deliveries []Delivery
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		deliveries: make([]Delivery, 0),
	}
}

func (m *MemoryStore) SaveDeliveries(_ context.Context, deliveries []Delivery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deliveries = append(m.deliveries, deliveries...)
	return nil
}

func (m *MemoryStore) GetDeliveries() []Delivery {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy to avoid race
	out := make([]Delivery, len(m.deliveries))
	copy(out, m.deliveries)
	return out
}
