package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kodin/caluu-backend/internal/app/models"
)

// GpaRecordRepository handles database operations for persisted GPA snapshots
type GpaRecordRepository struct {
	db *pgxpool.Pool
}

// NewGpaRecordRepository creates a new GPA record repository
func NewGpaRecordRepository(db *pgxpool.Pool) *GpaRecordRepository {
	return &GpaRecordRepository{
		db: db,
	}
}

// Create persists a GPA snapshot
func (r *GpaRecordRepository) Create(ctx context.Context, record *models.GpaRecord) error {
	query := `
		INSERT INTO gpa_records (program_id, academic_year, gpa)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		record.ProgramID,
		record.AcademicYear,
		record.Gpa,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating gpa record: %w", err)
	}

	return nil
}

// ListByProgram retrieves GPA snapshots for a program, newest first
func (r *GpaRecordRepository) ListByProgram(ctx context.Context, programID int64, limit int) ([]*models.GpaRecord, error) {
	query := `
		SELECT id, program_id, academic_year, gpa, created_at
		FROM gpa_records
		WHERE program_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, programID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.GpaRecord
	for rows.Next() {
		var record models.GpaRecord
		if err := rows.Scan(
			&record.ID,
			&record.ProgramID,
			&record.AcademicYear,
			&record.Gpa,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// CountAll returns the total number of stored GPA snapshots
func (r *GpaRecordRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM gpa_records`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting gpa records: %w", err)
	}

	return count, nil
}
