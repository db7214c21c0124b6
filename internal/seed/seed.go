package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/kodin/caluu-backend/internal/pkg/auth"
)

// CreateDefaultData seeds the initial admin account and a sample catalog,
// each only when its tables are still empty.
func CreateDefaultData(ctx context.Context, db *pgxpool.Pool, lgr zerolog.Logger) error {
	if err := seedAdmin(ctx, db, lgr); err != nil {
		return err
	}
	return seedCatalog(ctx, db, lgr)
}

// seedAdmin creates the admin account when the users table is empty. The
// password comes from ADMIN_PASSWORD; without it, seeding is skipped rather
// than shipping a known default credential.
func seedAdmin(ctx context.Context, db *pgxpool.Pool, lgr zerolog.Logger) error {
	var userCount int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&userCount); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if userCount > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		lgr.Warn().Msg("ADMIN_PASSWORD not set - skipping admin account seed")
		return nil
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@caluu.kodin.co.tz"
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO users (email, password, first_name, last_name, is_admin)
		VALUES ($1, $2, 'Caluu', 'Admin', TRUE)`,
		adminEmail, hashed)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	lgr.Info().Str("email", adminEmail).Msg("Seeded admin account")
	return nil
}

// seedCatalog creates one sample university, college and program with a
// first-year course list so a fresh database has something to browse.
func seedCatalog(ctx context.Context, db *pgxpool.Pool, lgr zerolog.Logger) error {
	var universityCount int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM universities`).Scan(&universityCount); err != nil {
		return fmt.Errorf("failed to count universities: %w", err)
	}
	if universityCount > 0 {
		return nil
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var universityID string
	err = tx.QueryRow(ctx, `
		INSERT INTO universities (name, country)
		VALUES ('University of Dar es Salaam', 'Tanzania')
		RETURNING id`).Scan(&universityID)
	if err != nil {
		return fmt.Errorf("failed to seed university: %w", err)
	}

	var collegeID string
	err = tx.QueryRow(ctx, `
		INSERT INTO colleges (name, university_id)
		VALUES ('College of Information and Communication Technologies', $1)
		RETURNING id`, universityID).Scan(&collegeID)
	if err != nil {
		return fmt.Errorf("failed to seed college: %w", err)
	}

	var programID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO programs (name, college_id, duration)
		VALUES ('BSc in Computer Science', $1, 3)
		RETURNING id`, collegeID).Scan(&programID)
	if err != nil {
		return fmt.Errorf("failed to seed program: %w", err)
	}

	var firstYearID int64
	for year := 1; year <= 3; year++ {
		var yearID int64
		err = tx.QueryRow(ctx, `
			INSERT INTO academic_years (program_id, year)
			VALUES ($1, $2)
			RETURNING id`, programID, year).Scan(&yearID)
		if err != nil {
			return fmt.Errorf("failed to seed academic year %d: %w", year, err)
		}
		if year == 1 {
			firstYearID = yearID
		}
	}

	courses := []struct {
		semester    string
		code        string
		name        string
		creditHours float64
	}{
		{"1", "CS110", "Principles of Programming", 12},
		{"1", "MT111", "Calculus I", 10},
		{"1", "CS132", "Discrete Mathematics", 8},
		{"2", "CS121", "Object Oriented Programming", 12},
		{"2", "CS143", "Computer Organization", 10},
	}
	for _, course := range courses {
		_, err = tx.Exec(ctx, `
			INSERT INTO courses (academic_year_id, semester, code, name, credit_hours, optional)
			VALUES ($1, $2, $3, $4, $5, FALSE)`,
			firstYearID, course.semester, course.code, course.name, course.creditHours)
		if err != nil {
			return fmt.Errorf("failed to seed course %s: %w", course.code, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	lgr.Info().Int64("programId", programID).Msg("Seeded sample catalog")
	return nil
}
