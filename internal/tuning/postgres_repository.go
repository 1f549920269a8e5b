package tuning

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// paramsKey is the single row key; only one parameter set is live at a time.
const paramsKey = "scoring"

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL scoring parameter repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetParams retrieves the stored parameter set.
func (r *PostgresRepository) GetParams(ctx context.Context) (*StoredParams, error) {
	query := `
		SELECT value, updated_at, updated_by
		FROM scoring_params
		WHERE key = $1
	`

	var (
		stored    StoredParams
		valueJSON []byte
	)

	err := r.pool.QueryRow(ctx, query, paramsKey).Scan(
		&valueJSON,
		&stored.UpdatedAt,
		&stored.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrParamsNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(valueJSON, &stored.Params); err != nil {
		return nil, err
	}

	return &stored, nil
}

// SetParams creates or replaces the stored parameter set.
func (r *PostgresRepository) SetParams(ctx context.Context, params *StoredParams) error {
	query := `
		INSERT INTO scoring_params (key, value, updated_at, updated_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by
	`

	valueJSON, err := json.Marshal(params.Params)
	if err != nil {
		return err
	}

	updatedAt := params.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err = r.pool.Exec(ctx, query, paramsKey, valueJSON, updatedAt, params.UpdatedBy)
	return err
}

// DeleteParams removes the stored parameter set.
func (r *PostgresRepository) DeleteParams(ctx context.Context) error {
	query := `DELETE FROM scoring_params WHERE key = $1`
	_, err := r.pool.Exec(ctx, query, paramsKey)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
