package chatbot

import (
	"context"
	"time"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/database"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
	"go.uber.org/zap"
)

const (
	maxEnrollments    = 5
	maxLessonProgress = 20
)

// UserContext is a per-request summary of a user's enrollment and progress,
// used to personalize responses. It is rebuilt on every request and never
// cached.
type UserContext struct {
	DisplayName          string
	Email                string
	Enrollments          []*models.Enrollment
	TotalProgressPercent int
	CompletedLessonCount int
	TotalLessonCount     int
	IsActive             bool
}

// UserContextLoader builds user contexts from enrollment records.
type UserContextLoader struct {
	enrollments database.EnrollmentRepositoryInterface
	logger      *zap.Logger
	timeout     time.Duration
}

// NewUserContextLoader creates a new user context loader
func NewUserContextLoader(enrollments database.EnrollmentRepositoryInterface, logger *zap.Logger) *UserContextLoader {
	return &UserContextLoader{
		enrollments: enrollments,
		logger:      logger,
		timeout:     defaultFetchTimeout,
	}
}

// Load returns nil for anonymous callers. For identified users it fetches
// enrollment and lesson progress summaries; on any fetch error it returns a
// context carrying only the display name and email, with numeric fields
// zeroed and IsActive false. Errors are never propagated.
func (l *UserContextLoader) Load(ctx context.Context, user *models.User) *UserContext {
	if user == nil {
		return nil
	}

	uc := &UserContext{
		DisplayName: user.DisplayName(),
		Email:       user.Email,
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	enrollments, err := l.enrollments.GetByUserID(ctx, user.ID, maxEnrollments)
	if err != nil {
		l.logger.Warn("failed_to_load_enrollments",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return uc
	}

	uc.Enrollments = enrollments
	uc.IsActive = len(enrollments) > 0
	if len(enrollments) > 0 {
		total := 0
		for _, e := range enrollments {
			total += e.ProgressPercent
		}
		uc.TotalProgressPercent = total / len(enrollments)
	}

	progress, err := l.enrollments.GetLessonProgressByUserID(ctx, user.ID, maxLessonProgress)
	if err != nil {
		l.logger.Warn("failed_to_load_lesson_progress",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		// Any fetch error degrades to the zeroed context
		return &UserContext{DisplayName: uc.DisplayName, Email: uc.Email}
	}

	uc.TotalLessonCount = len(progress)
	for _, p := range progress {
		if p.Completed {
			uc.CompletedLessonCount++
		}
	}

	return uc
}
