package database

import (
	"context"
	"fmt"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
)

// SiteContentRepository handles read access to the reference content the
// chatbot interpolates into responses: courses, success stories, testimonials.
type SiteContentRepository struct {
	db *DB
}

// NewSiteContentRepository creates a new site content repository
func NewSiteContentRepository(db *DB) *SiteContentRepository {
	return &SiteContentRepository{db: db}
}

// ListCourses retrieves up to limit courses, newest first
func (r *SiteContentRepository) ListCourses(ctx context.Context, limit int) ([]*models.Course, error) {
	query := `
		SELECT id, title, description, category, difficulty_level, created_at
		FROM courses
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	var courses []*models.Course
	for rows.Next() {
		c := &models.Course{}
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.DifficultyLevel, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}

	return courses, nil
}

// ListSuccessStories retrieves up to limit success stories, newest first
func (r *SiteContentRepository) ListSuccessStories(ctx context.Context, limit int) ([]*models.SuccessStory, error) {
	query := `
		SELECT id, student_name, title, story, created_at
		FROM success_stories
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list success stories: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	var stories []*models.SuccessStory
	for rows.Next() {
		s := &models.SuccessStory{}
		if err := rows.Scan(&s.ID, &s.StudentName, &s.Title, &s.Story, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan success story: %w", err)
		}
		stories = append(stories, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate success stories: %w", err)
	}

	return stories, nil
}

// ListTestimonials retrieves up to limit testimonials, newest first
func (r *SiteContentRepository) ListTestimonials(ctx context.Context, limit int) ([]*models.Testimonial, error) {
	query := `
		SELECT id, author_name, quote, rating, created_at
		FROM testimonials
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	var testimonials []*models.Testimonial
	for rows.Next() {
		tm := &models.Testimonial{}
		if err := rows.Scan(&tm.ID, &tm.AuthorName, &tm.Quote, &tm.Rating, &tm.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan testimonial: %w", err)
		}
		testimonials = append(testimonials, tm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate testimonials: %w", err)
	}

	return testimonials, nil
}

// CreateCourse inserts a course (used by the seed command)
func (r *SiteContentRepository) CreateCourse(ctx context.Context, c *models.Course) error {
	query := `
		INSERT INTO courses (id, title, description, category, difficulty_level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.Title, c.Description, c.Category, c.DifficultyLevel, c.CreatedAt); err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

// CreateSuccessStory inserts a success story (used by the seed command)
func (r *SiteContentRepository) CreateSuccessStory(ctx context.Context, s *models.SuccessStory) error {
	query := `
		INSERT INTO success_stories (id, student_name, title, story, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, s.ID, s.StudentName, s.Title, s.Story, s.CreatedAt); err != nil {
		return fmt.Errorf("failed to create success story: %w", err)
	}
	return nil
}

// CreateTestimonial inserts a testimonial (used by the seed command)
func (r *SiteContentRepository) CreateTestimonial(ctx context.Context, tm *models.Testimonial) error {
	query := `
		INSERT INTO testimonials (id, author_name, quote, rating, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, tm.ID, tm.AuthorName, tm.Quote, tm.Rating, tm.CreatedAt); err != nil {
		return fmt.Errorf("failed to create testimonial: %w", err)
	}
	return nil
}
