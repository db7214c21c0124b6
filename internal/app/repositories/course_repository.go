package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kodin/caluu-backend/internal/app/models"
	"github.com/kodin/caluu-backend/internal/pkg/apperrors"
)

// CourseRepository handles database operations for catalog courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT id, academic_year_id, semester, code, name, credit_hours, optional
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.AcademicYearID,
		&course.Semester,
		&course.Code,
		&course.Name,
		&course.CreditHours,
		&course.Optional,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// ListByProgramYear retrieves courses for a program's academic year and
// semester, filtered by the elective flag and ordered by course code. This
// backs the default tier of course resolution.
func (r *CourseRepository) ListByProgramYear(ctx context.Context, programID int64, year int, semester models.Semester, optional bool) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.academic_year_id, c.semester, c.code, c.name, c.credit_hours, c.optional
		FROM courses c
		JOIN academic_years ay ON ay.id = c.academic_year_id
		WHERE ay.program_id = $1 AND ay.year = $2 AND c.semester = $3 AND c.optional = $4
		ORDER BY c.code
	`

	rows, err := r.db.Query(ctx, query, programID, year, semester, optional)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCourses(rows)
}

// ListByAcademicYearID retrieves courses attached to an academic year row,
// optionally narrowed to one semester.
func (r *CourseRepository) ListByAcademicYearID(ctx context.Context, academicYearID int64, semester *models.Semester, optional bool) ([]*models.Course, error) {
	query := `
		SELECT id, academic_year_id, semester, code, name, credit_hours, optional
		FROM courses
		WHERE academic_year_id = $1 AND optional = $2
	`
	args := []interface{}{academicYearID, optional}
	if semester != nil {
		query += ` AND semester = $3`
		args = append(args, *semester)
	}
	query += ` ORDER BY code`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCourses(rows)
}

// Create inserts a new catalog course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (academic_year_id, semester, code, name, credit_hours, optional)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		course.AcademicYearID,
		course.Semester,
		course.Code,
		course.Name,
		course.CreditHours,
		course.Optional,
	).Scan(&course.ID)
	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// CountAll returns the total number of catalog courses
func (r *CourseRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}

	return count, nil
}

func scanCourses(rows pgx.Rows) ([]*models.Course, error) {
	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.AcademicYearID,
			&course.Semester,
			&course.Code,
			&course.Name,
			&course.CreditHours,
			&course.Optional,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}
