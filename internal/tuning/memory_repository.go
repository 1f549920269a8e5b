package tuning

import (
	"context"
	"sync"
)

// MemoryRepository is an in-memory implementation of Repository for
// development and testing.
type MemoryRepository struct {
	mu     sync.RWMutex
	stored *StoredParams
}

// NewMemoryRepository creates a new in-memory scoring parameter repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// GetParams retrieves the stored parameter set.
func (r *MemoryRepository) GetParams(_ context.Context) (*StoredParams, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.stored == nil {
		return nil, ErrParamsNotFound
	}
	cp := *r.stored
	return &cp, nil
}

// SetParams creates or replaces the stored parameter set.
func (r *MemoryRepository) SetParams(_ context.Context, params *StoredParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *params
	r.stored = &cp
	return nil
}

// DeleteParams removes the stored parameter set.
func (r *MemoryRepository) DeleteParams(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored = nil
	return nil
}

// Ensure MemoryRepository implements Repository interface.
var _ Repository = (*MemoryRepository)(nil)
