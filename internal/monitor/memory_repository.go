package monitor

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository is an in-memory implementation of Repository for
// development and testing.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []*AnalysisRecord
}

// NewMemoryRepository creates a new in-memory analysis record repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// InsertAnalysis persists a new analysis record.
func (r *MemoryRepository) InsertAnalysis(_ context.Context, record *AnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *record
	r.records = append(r.records, &cp)
	return nil
}

// RecentAnalyses returns up to limit records, newest first.
func (r *MemoryRepository) RecentAnalyses(_ context.Context, limit int) ([]*AnalysisRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sorted := make([]*AnalysisRecord, len(r.records))
	copy(sorted, r.records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]*AnalysisRecord, len(sorted))
	for i, rec := range sorted {
		cp := *rec
		out[i] = &cp
	}
	return out, nil
}

// GetAnalysis returns the record with the given ID.
func (r *MemoryRepository) GetAnalysis(_ context.Context, id string) (*AnalysisRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if rec.ID == id {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, ErrAnalysisNotFound
}

// CountAnalysesSince counts records created at or after the cutoff.
func (r *MemoryRepository) CountAnalysesSince(_ context.Context, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, rec := range r.records {
		if !rec.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// Ensure MemoryRepository implements Repository interface.
var _ Repository = (*MemoryRepository)(nil)
