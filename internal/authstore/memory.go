package authstore

import (
	"context"
	"sync"
)

// MemoryPersister keeps the record in process memory
type MemoryPersister struct {
	mu    sync.Mutex
	rec   *Record
	saves int
}

var _ Persister = (*MemoryPersister)(nil)

// NewMemoryPersister returns an empty persister, optionally pre-seeded
func NewMemoryPersister(seed *Record) *MemoryPersister {
	p := &MemoryPersister{}
	if seed != nil {
		rec := *seed
		p.rec = &rec
	}
	return p
}

func (p *MemoryPersister) Load(_ context.Context) (*Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rec == nil {
		return nil, nil
	}
	rec := *p.rec
	return &rec, nil
}

func (p *MemoryPersister) Save(_ context.Context, rec Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rec = &rec
	p.saves++
	return nil
}

func (p *MemoryPersister) Clear(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rec = nil
	return nil
}

// Saves returns how many times Save was called
func (p *MemoryPersister) Saves() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves
}
