package database

import (
	"context"
	"time"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
	"github.com/google/uuid"
)

// SiteContentRepositoryInterface defines the reads the site-data cache needs.
// This interface enables better testability by allowing mock implementations
type SiteContentRepositoryInterface interface {
	ListCourses(ctx context.Context, limit int) ([]*models.Course, error)
	ListSuccessStories(ctx context.Context, limit int) ([]*models.SuccessStory, error)
	ListTestimonials(ctx context.Context, limit int) ([]*models.Testimonial, error)
}

// EnrollmentRepositoryInterface defines the reads the user-context loader needs.
type EnrollmentRepositoryInterface interface {
	GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Enrollment, error)
	GetLessonProgressByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.LessonProgress, error)
}

// ConversationRepositoryInterface defines conversation log operations used by
// the engine, the miner and the stats view.
type ConversationRepositoryInterface interface {
	Insert(ctx context.Context, rec *models.ConversationRecord) error
	ListRecent(ctx context.Context, limit int) ([]*models.ConversationRecord, error)
	Count(ctx context.Context) (int, error)
}

// PatternRepositoryInterface defines learned pattern storage operations.
type PatternRepositoryInterface interface {
	Upsert(ctx context.Context, p *models.LearnedPattern) error
	ListAboveConfidence(ctx context.Context, minConfidence float64) ([]*models.LearnedPattern, error)
	IncrementUsage(ctx context.Context, trigger string) error
	Stats(ctx context.Context) (total int, avgConfidence float64, highConfidence int, lastUpdate *time.Time, err error)
}

// Ensure concrete types implement the interfaces
var (
	_ SiteContentRepositoryInterface  = (*SiteContentRepository)(nil)
	_ EnrollmentRepositoryInterface   = (*EnrollmentRepository)(nil)
	_ ConversationRepositoryInterface = (*ConversationRepository)(nil)
	_ PatternRepositoryInterface      = (*PatternRepository)(nil)
)
