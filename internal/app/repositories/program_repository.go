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
)

// ProgramRepository handles database operations for programs and their
// academic years
type ProgramRepository struct {
	db *pgxpool.Pool
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{
		db: db,
	}
}

// Create creates a program together with its academic year rows (1..Duration)
// in a single transaction.
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO programs (name, college_id, duration)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err = tx.QueryRow(ctx, query, program.Name, program.CollegeID, program.Duration).
		Scan(&program.ID, &program.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating program: %w", err)
	}

	for year := 1; year <= program.Duration; year++ {
		_, err = tx.Exec(ctx,
			`INSERT INTO academic_years (program_id, year) VALUES ($1, $2)`,
			program.ID, year)
		if err != nil {
			return fmt.Errorf("error creating academic year %d: %w", year, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a program by ID
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	query := `
		SELECT id, name, college_id, duration, created_at
		FROM programs
		WHERE id = $1
	`

	var program models.Program
	err := r.db.QueryRow(ctx, query, id).Scan(
		&program.ID,
		&program.Name,
		&program.CollegeID,
		&program.Duration,
		&program.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}

	return &program, nil
}

// GetAll retrieves all programs, optionally filtered by college
func (r *ProgramRepository) GetAll(ctx context.Context, collegeID *uuid.UUID) ([]*models.Program, error) {
	query := `
		SELECT id, name, college_id, duration, created_at
		FROM programs
	`
	var args []interface{}
	if collegeID != nil {
		query += ` WHERE college_id = $1`
		args = append(args, *collegeID)
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		var program models.Program
		if err := rows.Scan(
			&program.ID,
			&program.Name,
			&program.CollegeID,
			&program.Duration,
			&program.CreatedAt,
		); err != nil {
			return nil, err
		}
		programs = append(programs, &program)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return programs, nil
}

// GetAcademicYears retrieves academic years, optionally filtered by program
func (r *ProgramRepository) GetAcademicYears(ctx context.Context, programID *int64) ([]*models.AcademicYear, error) {
	query := `
		SELECT id, program_id, year, courses_confirmed
		FROM academic_years
	`
	var args []interface{}
	if programID != nil {
		query += ` WHERE program_id = $1`
		args = append(args, *programID)
	}
	query += ` ORDER BY program_id, year`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []*models.AcademicYear
	for rows.Next() {
		var year models.AcademicYear
		if err := rows.Scan(
			&year.ID,
			&year.ProgramID,
			&year.Year,
			&year.CoursesConfirmed,
		); err != nil {
			return nil, err
		}
		years = append(years, &year)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return years, nil
}

// CountAll returns the total number of programs
func (r *ProgramRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM programs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting programs: %w", err)
	}

	return count, nil
}

// CountConfirmedYears returns how many academic years have a confirmed
// course list
func (r *ProgramRepository) CountConfirmedYears(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM academic_years WHERE courses_confirmed`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting confirmed years: %w", err)
	}

	return count, nil
}

// ProgramsByCollege is a per-college program tally
type ProgramsByCollege struct {
	CollegeName string
	Total       int64
}

// CountByCollege returns program counts grouped by college name
func (r *ProgramRepository) CountByCollege(ctx context.Context) ([]ProgramsByCollege, error) {
	query := `
		SELECT c.name, COUNT(p.id)
		FROM colleges c
		LEFT JOIN programs p ON p.college_id = c.id
		GROUP BY c.name
		ORDER BY COUNT(p.id) DESC, c.name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tallies []ProgramsByCollege
	for rows.Next() {
		var tally ProgramsByCollege
		if err := rows.Scan(&tally.CollegeName, &tally.Total); err != nil {
			return nil, err
		}
		tallies = append(tallies, tally)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tallies, nil
}

// ConfirmAcademicYear marks an academic year's course list as confirmed
func (r *ProgramRepository) ConfirmAcademicYear(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE academic_years SET courses_confirmed = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error confirming academic year: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAcademicYearNotFound
	}

	return nil
}

// GetAcademicYearByID retrieves one academic year row
func (r *ProgramRepository) GetAcademicYearByID(ctx context.Context, id int64) (*models.AcademicYear, error) {
	query := `
		SELECT id, program_id, year, courses_confirmed
		FROM academic_years
		WHERE id = $1
	`

	var year models.AcademicYear
	err := r.db.QueryRow(ctx, query, id).Scan(
		&year.ID,
		&year.ProgramID,
		&year.Year,
		&year.CoursesConfirmed,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAcademicYearNotFound
		}
		return nil, fmt.Errorf("error retrieving academic year: %w", err)
	}

	return &year, nil
}
