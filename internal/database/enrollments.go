package database

import (
	"context"
	"fmt"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
	"github.com/google/uuid"
)

// EnrollmentRepository handles enrollment and lesson progress reads used for
// response personalization.
type EnrollmentRepository struct {
	db *DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// GetByUserID retrieves up to limit enrollments for a user, joined with the
// course title and category, newest enrollment first
func (r *EnrollmentRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Enrollment, error) {
	query := `
		SELECT e.id, e.user_id, e.course_id, c.title, c.category, e.progress_percent, e.enrolled_at
		FROM course_enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.user_id = $1
		ORDER BY e.enrolled_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	var enrollments []*models.Enrollment
	for rows.Next() {
		e := &models.Enrollment{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.CourseID, &e.CourseTitle, &e.CourseCategory, &e.ProgressPercent, &e.EnrolledAt); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate enrollments: %w", err)
	}

	return enrollments, nil
}

// GetLessonProgressByUserID retrieves up to limit lesson progress rows for a
// user, most recently updated first
func (r *EnrollmentRepository) GetLessonProgressByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.LessonProgress, error) {
	query := `
		SELECT id, user_id, lesson_id, completed, updated_at
		FROM lesson_progress
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list lesson progress: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	var progress []*models.LessonProgress
	for rows.Next() {
		p := &models.LessonProgress{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.LessonID, &p.Completed, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lesson progress: %w", err)
		}
		progress = append(progress, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lesson progress: %w", err)
	}

	return progress, nil
}
