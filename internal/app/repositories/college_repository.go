package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kodin/caluu-backend/internal/app/models"
	"github.com/kodin/caluu-backend/internal/pkg/apperrors"
	"github.com/kodin/caluu-backend/internal/pkg/dberrors"
)

// CollegeRepository handles database operations for colleges
type CollegeRepository struct {
	db *pgxpool.Pool
}

// NewCollegeRepository creates a new college repository
func NewCollegeRepository(db *pgxpool.Pool) *CollegeRepository {
	return &CollegeRepository{
		db: db,
	}
}

// Create creates a new college. Name uniqueness is case-insensitive within a
// university.
func (r *CollegeRepository) Create(ctx context.Context, college *models.College) error {
	if college.ID == uuid.Nil {
		college.ID = uuid.New()
	}

	query := `
		INSERT INTO colleges (id, name, university_id)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, college.ID, college.Name, college.UniversityID).
		Scan(&college.CreatedAt, &college.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "colleges_name_university_idx") {
			return apperrors.ErrCollegeAlreadyExists
		}
		return fmt.Errorf("error creating college: %w", err)
	}

	return nil
}

// GetByID retrieves a college by ID
func (r *CollegeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.College, error) {
	query := `
		SELECT id, name, university_id, created_at, updated_at
		FROM colleges
		WHERE id = $1
	`

	var college models.College
	err := r.db.QueryRow(ctx, query, id).Scan(
		&college.ID,
		&college.Name,
		&college.UniversityID,
		&college.CreatedAt,
		&college.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCollegeNotFound
		}
		return nil, fmt.Errorf("error retrieving college: %w", err)
	}

	return &college, nil
}

// CountAll returns the total number of colleges
func (r *CollegeRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM colleges`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting colleges: %w", err)
	}

	return count, nil
}

// GetAll retrieves all colleges, optionally filtered by university
func (r *CollegeRepository) GetAll(ctx context.Context, universityID *uuid.UUID) ([]*models.College, error) {
	query := `
		SELECT id, name, university_id, created_at, updated_at
		FROM colleges
	`
	var args []interface{}
	if universityID != nil {
		query += ` WHERE university_id = $1`
		args = append(args, *universityID)
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var colleges []*models.College
	for rows.Next() {
		var college models.College
		if err := rows.Scan(
			&college.ID,
			&college.Name,
			&college.UniversityID,
			&college.CreatedAt,
			&college.UpdatedAt,
		); err != nil {
			return nil, err
		}
		colleges = append(colleges, &college)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return colleges, nil
}
