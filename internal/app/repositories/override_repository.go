package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kodin/caluu-backend/internal/app/models"
	"github.com/kodin/caluu-backend/internal/db"
)

// OverrideRepository handles database operations for personal and global
// course overrides. The write path is transactional: the upsert and the
// matching-submission count must observe a consistent state so the promotion
// decision includes the row just written.
type OverrideRepository struct {
	db *db.PostgresDB
}

// NewOverrideRepository creates a new override repository
func NewOverrideRepository(database *db.PostgresDB) *OverrideRepository {
	return &OverrideRepository{
		db: database,
	}
}

// GetUserOverride retrieves a user's saved course list for a program year.
// Returns (nil, nil) when the user has no override for the pair.
func (r *OverrideRepository) GetUserOverride(ctx context.Context, userID, programID int64, academicYear int) (*models.CourseOverride, error) {
	query := `
		SELECT id, user_id, program_id, academic_year, payload, signature, created_at, updated_at
		FROM course_overrides
		WHERE user_id = $1 AND program_id = $2 AND academic_year = $3
	`

	var override models.CourseOverride
	var payload []byte
	err := r.db.Pool.QueryRow(ctx, query, userID, programID, academicYear).Scan(
		&override.ID,
		&override.UserID,
		&override.ProgramID,
		&override.AcademicYear,
		&payload,
		&override.Signature,
		&override.CreatedAt,
		&override.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving course override: %w", err)
	}

	if err := json.Unmarshal(payload, &override.Payload); err != nil {
		return nil, fmt.Errorf("error decoding override payload: %w", err)
	}

	return &override, nil
}

// GetGlobalOverride retrieves the crowd-approved course list for a program
// year. Returns (nil, nil) when none exists.
func (r *OverrideRepository) GetGlobalOverride(ctx context.Context, programID int64, academicYear int) (*models.GlobalCourseOverride, error) {
	query := `
		SELECT id, program_id, academic_year, payload, signature, created_at, updated_at
		FROM global_course_overrides
		WHERE program_id = $1 AND academic_year = $2
	`

	var override models.GlobalCourseOverride
	var payload []byte
	err := r.db.Pool.QueryRow(ctx, query, programID, academicYear).Scan(
		&override.ID,
		&override.ProgramID,
		&override.AcademicYear,
		&payload,
		&override.Signature,
		&override.CreatedAt,
		&override.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving global course override: %w", err)
	}

	if err := json.Unmarshal(payload, &override.Payload); err != nil {
		return nil, fmt.Errorf("error decoding global override payload: %w", err)
	}

	return &override, nil
}

// UpsertUserOverrideAndCount writes the user's override (create-or-replace
// keyed on user, program and year) and returns the number of distinct users
// whose saved payload carries the same signature. Both statements run in one
// transaction so the returned count includes the row just written.
func (r *OverrideRepository) UpsertUserOverrideAndCount(ctx context.Context, override *models.CourseOverride) (int, error) {
	payload, err := json.Marshal(override.Payload)
	if err != nil {
		return 0, fmt.Errorf("error encoding override payload: %w", err)
	}

	var count int
	err = r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		upsert := `
			INSERT INTO course_overrides (user_id, program_id, academic_year, payload, signature)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, program_id, academic_year)
			DO UPDATE SET payload = EXCLUDED.payload, signature = EXCLUDED.signature, updated_at = NOW()
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRow(ctx, upsert,
			override.UserID,
			override.ProgramID,
			override.AcademicYear,
			payload,
			override.Signature,
		).Scan(&override.ID, &override.CreatedAt, &override.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error upserting course override: %w", err)
		}

		return tx.QueryRow(ctx, `
			SELECT COUNT(DISTINCT user_id)
			FROM course_overrides
			WHERE program_id = $1 AND academic_year = $2 AND signature = $3`,
			override.ProgramID, override.AcademicYear, override.Signature,
		).Scan(&count)
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// UpsertGlobalOverride creates or replaces the global override for a program
// year. Overwriting with an equivalent payload is idempotent, so concurrent
// promotions resolve as last-writer-wins.
func (r *OverrideRepository) UpsertGlobalOverride(ctx context.Context, override *models.GlobalCourseOverride) error {
	payload, err := json.Marshal(override.Payload)
	if err != nil {
		return fmt.Errorf("error encoding global override payload: %w", err)
	}

	query := `
		INSERT INTO global_course_overrides (program_id, academic_year, payload, signature)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (program_id, academic_year)
		DO UPDATE SET payload = EXCLUDED.payload, signature = EXCLUDED.signature, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err = r.db.Pool.QueryRow(ctx, query,
		override.ProgramID,
		override.AcademicYear,
		payload,
		override.Signature,
	).Scan(&override.ID, &override.CreatedAt, &override.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error upserting global course override: %w", err)
	}

	return nil
}
