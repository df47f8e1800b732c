package chatbot

import (
	"context"
	"errors"
	"testing"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeEnrollmentRepo struct {
	enrollments []*models.Enrollment
	progress    []*models.LessonProgress
	enrollErr   error
	progressErr error
}

func (f *fakeEnrollmentRepo) GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Enrollment, error) {
	if f.enrollErr != nil {
		return nil, f.enrollErr
	}
	return f.enrollments, nil
}

func (f *fakeEnrollmentRepo) GetLessonProgressByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.LessonProgress, error) {
	if f.progressErr != nil {
		return nil, f.progressErr
	}
	return f.progress, nil
}

func testUser(name string) *models.User {
	u := &models.User{ID: uuid.New(), Email: "ada@example.com"}
	if name != "" {
		u.Name = &name
	}
	return u
}

func TestUserContextLoaderAnonymous(t *testing.T) {
	t.Parallel()

	loader := NewUserContextLoader(&fakeEnrollmentRepo{}, zap.NewNop())
	if uc := loader.Load(context.Background(), nil); uc != nil {
		t.Fatalf("expected nil context for anonymous caller, got %+v", uc)
	}
}

func TestUserContextLoaderAggregates(t *testing.T) {
	t.Parallel()

	repo := &fakeEnrollmentRepo{
		enrollments: []*models.Enrollment{
			{CourseTitle: "Smart Farming Fundamentals", ProgressPercent: 40},
			{CourseTitle: "IoT for Agriculture", ProgressPercent: 80},
		},
		progress: []*models.LessonProgress{
			{Completed: true},
			{Completed: true},
			{Completed: false},
		},
	}
	loader := NewUserContextLoader(repo, zap.NewNop())

	uc := loader.Load(context.Background(), testUser("Ada"))
	if uc == nil {
		t.Fatal("expected a context, got nil")
	}
	if uc.DisplayName != "Ada" {
		t.Errorf("display name = %q, want Ada", uc.DisplayName)
	}
	if !uc.IsActive {
		t.Error("expected IsActive for an enrolled user")
	}
	if uc.TotalProgressPercent != 60 {
		t.Errorf("average progress = %d, want 60", uc.TotalProgressPercent)
	}
	if uc.CompletedLessonCount != 2 || uc.TotalLessonCount != 3 {
		t.Errorf("lesson counts = %d/%d, want 2/3", uc.CompletedLessonCount, uc.TotalLessonCount)
	}
}

func TestUserContextLoaderNameFallsBackToEmail(t *testing.T) {
	t.Parallel()

	loader := NewUserContextLoader(&fakeEnrollmentRepo{}, zap.NewNop())
	uc := loader.Load(context.Background(), testUser(""))
	if uc.DisplayName != "ada" {
		t.Errorf("display name = %q, want the email local part", uc.DisplayName)
	}
}

func TestUserContextLoaderDegradesOnFetchError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		repo *fakeEnrollmentRepo
	}{
		{"enrollment fetch fails", &fakeEnrollmentRepo{enrollErr: errors.New("timeout")}},
		{"lesson progress fetch fails", &fakeEnrollmentRepo{
			enrollments: []*models.Enrollment{{ProgressPercent: 50}},
			progressErr: errors.New("timeout"),
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loader := NewUserContextLoader(tt.repo, zap.NewNop())
			uc := loader.Load(context.Background(), testUser("Ada"))

			if uc == nil {
				t.Fatal("expected a degraded context, got nil")
			}
			if uc.DisplayName != "Ada" || uc.Email != "ada@example.com" {
				t.Errorf("identity fields not preserved: %+v", uc)
			}
			if uc.IsActive || uc.TotalProgressPercent != 0 || len(uc.Enrollments) != 0 ||
				uc.CompletedLessonCount != 0 || uc.TotalLessonCount != 0 {
				t.Errorf("expected zeroed context on fetch error, got %+v", uc)
			}
		})
	}
}
