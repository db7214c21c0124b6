package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kodin/caluu-backend/internal/app/models"
)

// FeedbackRepository handles database operations for site and course feedback
type FeedbackRepository struct {
	db *pgxpool.Pool
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{
		db: db,
	}
}

// CreateFeedback stores general site feedback
func (r *FeedbackRepository) CreateFeedback(ctx context.Context, feedback *models.Feedback) error {
	query := `
		INSERT INTO feedback (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		feedback.Name,
		feedback.Email,
		feedback.Message,
	).Scan(&feedback.ID, &feedback.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating feedback: %w", err)
	}

	return nil
}

// CreateCourseFeedback stores a course list issue report
func (r *FeedbackRepository) CreateCourseFeedback(ctx context.Context, feedback *models.CourseFeedback) error {
	query := `
		INSERT INTO course_feedback (program_id, academic_year, issue, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		feedback.ProgramID,
		feedback.AcademicYear,
		feedback.Issue,
		feedback.Description,
	).Scan(&feedback.ID, &feedback.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating course feedback: %w", err)
	}

	return nil
}

// CountAll returns the combined number of feedback entries of both kinds
func (r *FeedbackRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM feedback) + (SELECT COUNT(*) FROM course_feedback)`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting feedback: %w", err)
	}

	return count, nil
}

// ListFeedback retrieves site feedback, newest first
func (r *FeedbackRepository) ListFeedback(ctx context.Context, limit int) ([]*models.Feedback, error) {
	query := `
		SELECT id, name, email, message, created_at
		FROM feedback
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Feedback
	for rows.Next() {
		var item models.Feedback
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Email,
			&item.Message,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// ListCourseFeedback retrieves course issue reports, newest first
func (r *FeedbackRepository) ListCourseFeedback(ctx context.Context, limit int) ([]*models.CourseFeedback, error) {
	query := `
		SELECT id, program_id, academic_year, issue, description, created_at
		FROM course_feedback
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.CourseFeedback
	for rows.Next() {
		var item models.CourseFeedback
		if err := rows.Scan(
			&item.ID,
			&item.ProgramID,
			&item.AcademicYear,
			&item.Issue,
			&item.Description,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
