package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/services/chatbot"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakePatternRepo struct {
	listErr error
	panics  bool
}

func (f *fakePatternRepo) Upsert(ctx context.Context, p *models.LearnedPattern) error {
	return nil
}

func (f *fakePatternRepo) ListAboveConfidence(ctx context.Context, minConfidence float64) ([]*models.LearnedPattern, error) {
	if f.panics {
		panic("persistence layer gone")
	}
	return nil, f.listErr
}

func (f *fakePatternRepo) IncrementUsage(ctx context.Context, trigger string) error {
	return nil
}

func (f *fakePatternRepo) Stats(ctx context.Context) (int, float64, int, *time.Time, error) {
	return 0, 0, 0, nil, nil
}

type stubContentRepo struct{}

func (stubContentRepo) ListCourses(ctx context.Context, limit int) ([]*models.Course, error) {
	return nil, nil
}

func (stubContentRepo) ListSuccessStories(ctx context.Context, limit int) ([]*models.SuccessStory, error) {
	return nil, nil
}

func (stubContentRepo) ListTestimonials(ctx context.Context, limit int) ([]*models.Testimonial, error) {
	return nil, nil
}

type stubEnrollmentRepo struct{}

func (stubEnrollmentRepo) GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Enrollment, error) {
	return nil, nil
}

func (stubEnrollmentRepo) GetLessonProgressByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.LessonProgress, error) {
	return nil, nil
}

type noopRecorder struct{}

func (noopRecorder) LogConversation(ctx context.Context, rec *models.ConversationRecord) {}
func (noopRecorder) IncrementUsage(ctx context.Context, trigger string)                  {}

func newChatHandler(patterns *fakePatternRepo) *ChatHandler {
	logger := zap.NewNop()
	engine := chatbot.NewEngine(
		chatbot.NewSiteDataCache(stubContentRepo{}, logger),
		chatbot.NewUserContextLoader(stubEnrollmentRepo{}, logger),
		patterns,
		noopRecorder{},
		logger,
		"",
	)
	return NewChatHandler(engine, logger)
}

func postChat(t *testing.T, h *ChatHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.PostMessage(rr, req)
	return rr
}

func TestPostMessage(t *testing.T) {
	t.Parallel()

	h := newChatHandler(&fakePatternRepo{})
	rr := postChat(t, h, `{"message":"hello"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Response      string `json:"response"`
			Authenticated bool   `json:"authenticated"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.Success {
		t.Error("expected success=true")
	}
	if body.Data.Response == "" {
		t.Error("expected a non-empty bot response")
	}
	if body.Data.Authenticated {
		t.Error("expected authenticated=false without a bearer token")
	}
}

func TestPostMessageValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"missing message", `{}`},
		{"blank message", `{"message":"   "}`},
		{"invalid json", `{"message":`},
		{"too long", `{"message":"` + strings.Repeat("a", 2001) + `"}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newChatHandler(&fakePatternRepo{})
			rr := postChat(t, h, tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rr.Code)
			}
		})
	}
}

func TestPostMessageSubstitutesApologyOnPanic(t *testing.T) {
	t.Parallel()

	h := newChatHandler(&fakePatternRepo{panics: true})
	rr := postChat(t, h, `{"message":"hello"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with the apology body", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "having trouble connecting") {
		t.Errorf("body %q does not carry the apology message", rr.Body.String())
	}
}
