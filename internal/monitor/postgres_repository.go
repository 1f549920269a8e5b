package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL analysis record repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// InsertAnalysis persists a new analysis record.
func (r *PostgresRepository) InsertAnalysis(ctx context.Context, record *AnalysisRecord) error {
	query := `
		INSERT INTO analysis_records (
			id, location, season, temperature, humidity,
			top_crop, top_score, crops_evaluated, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.Location,
		record.Season,
		record.Temperature,
		record.Humidity,
		record.TopCrop,
		record.TopScore,
		record.CropsEvaluated,
		record.CreatedAt,
	)
	return err
}

// RecentAnalyses returns up to limit records, newest first.
func (r *PostgresRepository) RecentAnalyses(ctx context.Context, limit int) ([]*AnalysisRecord, error) {
	query := `
		SELECT id, location, season, temperature, humidity,
		       top_crop, top_score, crops_evaluated, created_at
		FROM analysis_records
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*AnalysisRecord
	for rows.Next() {
		var record AnalysisRecord
		err := rows.Scan(
			&record.ID,
			&record.Location,
			&record.Season,
			&record.Temperature,
			&record.Humidity,
			&record.TopCrop,
			&record.TopScore,
			&record.CropsEvaluated,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// GetAnalysis returns the record with the given ID.
func (r *PostgresRepository) GetAnalysis(ctx context.Context, id string) (*AnalysisRecord, error) {
	query := `
		SELECT id, location, season, temperature, humidity,
		       top_crop, top_score, crops_evaluated, created_at
		FROM analysis_records
		WHERE id = $1
	`

	var record AnalysisRecord
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.Location,
		&record.Season,
		&record.Temperature,
		&record.Humidity,
		&record.TopCrop,
		&record.TopScore,
		&record.CropsEvaluated,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAnalysisNotFound
		}
		return nil, err
	}
	return &record, nil
}

// CountAnalysesSince counts records created at or after the cutoff.
func (r *PostgresRepository) CountAnalysesSince(ctx context.Context, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM analysis_records WHERE created_at >= $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
