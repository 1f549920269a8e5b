package monitor

import (
	"context"
	"time"
)

// Repository defines the interface for analysis record storage.
type Repository interface {
	// InsertAnalysis persists a new analysis record.
	InsertAnalysis(ctx context.Context, record *AnalysisRecord) error

	// RecentAnalyses returns up to limit records, newest first.
	RecentAnalyses(ctx context.Context, limit int) ([]*AnalysisRecord, error)

	// GetAnalysis returns the record with the given ID, or
	// ErrAnalysisNotFound when no such record exists.
	GetAnalysis(ctx context.Context, id string) (*AnalysisRecord, error)

	// CountAnalysesSince counts records created at or after the cutoff.
	CountAnalysesSince(ctx context.Context, since time.Time) (int, error)
}
