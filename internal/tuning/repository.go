package tuning

import "context"

// Repository defines the interface for scoring parameter storage.
type Repository interface {
	// GetParams retrieves the stored parameter set.
	// Returns ErrParamsNotFound when nothing has been stored yet.
	GetParams(ctx context.Context) (*StoredParams, error)

	// SetParams creates or replaces the stored parameter set.
	SetParams(ctx context.Context, params *StoredParams) error

	// DeleteParams removes the stored parameter set, reverting reads to
	// ErrParamsNotFound.
	DeleteParams(ctx context.Context) error
}
