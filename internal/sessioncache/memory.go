// Package sessioncache stores the locally cached booking session record.
package sessioncache

import (
	"context"
	"sync"

	"github.com/metinatakli/cinex-booking/internal/domain"
)

// Memory keeps records in process memory. It is the cache of choice for
// tests and single-process clients.
type Memory struct {
	mu      sync.RWMutex
	records map[domain.CachePurpose]domain.CachedSessionRecord
}

func NewMemory() *Memory {
	return &Memory{
		records: make(map[domain.CachePurpose]domain.CachedSessionRecord),
	}
}

func (m *Memory) Get(_ context.Context, purpose domain.CachePurpose) (*domain.CachedSessionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[purpose]
	if !ok {
		return nil, nil
	}

	return &record, nil
}

func (m *Memory) Set(_ context.Context, purpose domain.CachePurpose, record domain.CachedSessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[purpose] = record

	return nil
}

func (m *Memory) Clear(_ context.Context, purpose domain.CachePurpose) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, purpose)

	return nil
}
