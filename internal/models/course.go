package models

import (
	"time"

	"github.com/google/uuid"
)

// Course is a catalog entry for an academy course.
type Course struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	DifficultyLevel string    `json:"difficulty_level"`
	CreatedAt       time.Time `json:"created_at"`
}

// SuccessStory is a published student outcome used to enrich chat responses.
type SuccessStory struct {
	ID          uuid.UUID `json:"id"`
	StudentName string    `json:"student_name"`
	Title       string    `json:"title"`
	Story       string    `json:"story"`
	CreatedAt   time.Time `json:"created_at"`
}

// Testimonial is a short quote from a student.
type Testimonial struct {
	ID         uuid.UUID `json:"id"`
	AuthorName string    `json:"author_name"`
	Quote      string    `json:"quote"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
}

// Enrollment links a user to a course, with the course title and category
// denormalized by the join in the enrollments repository.
type Enrollment struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	CourseID        uuid.UUID `json:"course_id"`
	CourseTitle     string    `json:"course_title"`
	CourseCategory  string    `json:"course_category"`
	ProgressPercent int       `json:"progress_percent"`
	EnrolledAt      time.Time `json:"enrolled_at"`
}

// LessonProgress records a user's completion state for a single lesson.
type LessonProgress struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	LessonID  uuid.UUID `json:"lesson_id"`
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `json:"updated_at"`
}
