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

// UniversityRepository handles database operations for universities
type UniversityRepository struct {
	db *pgxpool.Pool
}

// NewUniversityRepository creates a new university repository
func NewUniversityRepository(db *pgxpool.Pool) *UniversityRepository {
	return &UniversityRepository{
		db: db,
	}
}

// Create creates a new university. Name uniqueness is case-insensitive,
// enforced by a unique index on lower(name).
func (r *UniversityRepository) Create(ctx context.Context, university *models.University) error {
	if university.ID == uuid.Nil {
		university.ID = uuid.New()
	}

	query := `
		INSERT INTO universities (id, name, country)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, university.ID, university.Name, university.Country).
		Scan(&university.CreatedAt, &university.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "universities_name_lower_idx") {
			return apperrors.ErrUniversityAlreadyExists
		}
		return fmt.Errorf("error creating university: %w", err)
	}

	return nil
}

// GetByID retrieves a university by ID
func (r *UniversityRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.University, error) {
	query := `
		SELECT id, name, country, created_at, updated_at
		FROM universities
		WHERE id = $1
	`

	var university models.University
	err := r.db.QueryRow(ctx, query, id).Scan(
		&university.ID,
		&university.Name,
		&university.Country,
		&university.CreatedAt,
		&university.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUniversityNotFound
		}
		return nil, fmt.Errorf("error retrieving university: %w", err)
	}

	return &university, nil
}

// GetAll retrieves all universities ordered by name
func (r *UniversityRepository) GetAll(ctx context.Context) ([]*models.University, error) {
	query := `
		SELECT id, name, country, created_at, updated_at
		FROM universities
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var universities []*models.University
	for rows.Next() {
		var university models.University
		if err := rows.Scan(
			&university.ID,
			&university.Name,
			&university.Country,
			&university.CreatedAt,
			&university.UpdatedAt,
		); err != nil {
			return nil, err
		}
		universities = append(universities, &university)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return universities, nil
}
