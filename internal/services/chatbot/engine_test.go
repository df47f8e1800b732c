package chatbot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
	"go.uber.org/zap"
)

type fakePatternRepo struct {
	patterns    []*models.LearnedPattern
	listErr     error
	incremented []string
}

func (f *fakePatternRepo) Upsert(ctx context.Context, p *models.LearnedPattern) error {
	return nil
}

func (f *fakePatternRepo) ListAboveConfidence(ctx context.Context, minConfidence float64) ([]*models.LearnedPattern, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.LearnedPattern
	for _, p := range f.patterns {
		if p.Confidence >= minConfidence {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePatternRepo) IncrementUsage(ctx context.Context, trigger string) error {
	f.incremented = append(f.incremented, trigger)
	return nil
}

func (f *fakePatternRepo) Stats(ctx context.Context) (int, float64, int, *time.Time, error) {
	return len(f.patterns), 0, 0, nil, nil
}

type fakeRecorder struct {
	logged      []*models.ConversationRecord
	incremented []string
}

func (f *fakeRecorder) LogConversation(ctx context.Context, rec *models.ConversationRecord) {
	f.logged = append(f.logged, rec)
}

func (f *fakeRecorder) IncrementUsage(ctx context.Context, trigger string) {
	f.incremented = append(f.incremented, trigger)
}

func newTestEngine(patterns *fakePatternRepo, recorder *fakeRecorder) *Engine {
	e := NewEngine(
		NewSiteDataCache(&fakeSiteContentRepo{}, zap.NewNop()),
		NewUserContextLoader(&fakeEnrollmentRepo{}, zap.NewNop()),
		patterns,
		recorder,
		zap.NewNop(),
		"",
	)
	e.randIntn = func(n int) int { return 0 }
	return e
}

func TestEngineExactPatternMatch(t *testing.T) {
	t.Parallel()

	patterns := &fakePatternRepo{patterns: []*models.LearnedPattern{
		{
			PatternType: models.PatternTypeFrequentQuestion,
			Trigger:     "when does the next course start",
			Response:    "Our next course starts Monday.",
			Confidence:  0.9,
		},
	}}
	recorder := &fakeRecorder{}
	e := newTestEngine(patterns, recorder)

	got := e.GetResponse(context.Background(), "When does the NEXT course start?", testUser("Ada"))

	if got != "Our next course starts Monday." {
		t.Errorf("response = %q, want the stored pattern response verbatim", got)
	}
	if len(recorder.incremented) != 1 || recorder.incremented[0] != "when does the next course start" {
		t.Errorf("usage increments = %v, want one for the matched trigger", recorder.incremented)
	}
	if len(recorder.logged) != 1 {
		t.Fatalf("logged %d conversations, want 1", len(recorder.logged))
	}
	rec := recorder.logged[0]
	if rec.Context[models.ContextKeySource] != models.ResponseSourceLearned {
		t.Errorf("logged source = %v, want learned", rec.Context[models.ContextKeySource])
	}
	if rec.Context[models.ContextKeyConfidence] != "high" {
		t.Errorf("logged confidence = %v, want high", rec.Context[models.ContextKeyConfidence])
	}
}

func TestEngineExactMatchNeedsHighConfidence(t *testing.T) {
	t.Parallel()

	// At 0.65 the pattern clears retrieval but neither the exact nor the
	// partial bar, and it is not a topic pattern.
	patterns := &fakePatternRepo{patterns: []*models.LearnedPattern{
		{
			PatternType: models.PatternTypeFrequentQuestion,
			Trigger:     "what is precision agriculture exactly",
			Response:    "It means using data to farm.",
			Confidence:  0.65,
		},
	}}
	recorder := &fakeRecorder{}
	e := newTestEngine(patterns, recorder)

	got := e.GetResponse(context.Background(), "what is precision agriculture exactly", nil)

	if got == "It means using data to farm." {
		t.Error("low-confidence pattern should not be served as a match")
	}
	if len(recorder.incremented) != 0 {
		t.Errorf("usage increments = %v, want none", recorder.incremented)
	}
}

func TestEnginePartialPatternMatch(t *testing.T) {
	t.Parallel()

	patterns := &fakePatternRepo{patterns: []*models.LearnedPattern{
		{
			PatternType: models.PatternTypeFrequentQuestion,
			Trigger:     "how do i track my course progress",
			Response:    "Open the dashboard to see your progress.",
			Confidence:  0.75,
		},
	}}
	recorder := &fakeRecorder{}
	e := newTestEngine(patterns, recorder)

	// Six of the trigger's seven words overlap; similarity 6/7 clears 0.7.
	got := e.GetResponse(context.Background(), "how do i track my progress", nil)

	if got != "Open the dashboard to see your progress." {
		t.Errorf("response = %q, want the partial-match pattern response", got)
	}
}

func TestEngineTopicPatternMatch(t *testing.T) {
	t.Parallel()

	patterns := &fakePatternRepo{patterns: []*models.LearnedPattern{
		{
			PatternType: models.PatternTypeTopic,
			Trigger:     "farming",
			Response:    "Our farming track covers soil, crops and irrigation in depth.",
			Confidence:  0.8,
		},
	}}
	recorder := &fakeRecorder{}
	e := newTestEngine(patterns, recorder)

	got := e.GetResponse(context.Background(), "tell me something interesting about farming methods", nil)

	if got != "Our farming track covers soil, crops and irrigation in depth." {
		t.Errorf("response = %q, want the topic pattern response", got)
	}
}

func TestEnginePersonalizesLearnedResponse(t *testing.T) {
	t.Parallel()

	patterns := &fakePatternRepo{patterns: []*models.LearnedPattern{
		{
			PatternType: models.PatternTypeFrequentQuestion,
			Trigger:     "hello again",
			Response:    "Hi there, welcome back!",
			Confidence:  0.9,
		},
	}}
	e := newTestEngine(patterns, &fakeRecorder{})

	got := e.GetResponse(context.Background(), "hello AGAIN", testUser("Ada"))

	if got != "Hi Ada, welcome back!" {
		t.Errorf("response = %q, want the placeholder replaced with the display name", got)
	}
}

func TestEngineAnonymousIsNeverLogged(t *testing.T) {
	t.Parallel()

	recorder := &fakeRecorder{}
	e := newTestEngine(&fakePatternRepo{}, recorder)

	got := e.GetResponse(context.Background(), "hello", nil)

	if !strings.Contains(got, DefaultBrandName) {
		t.Errorf("greeting %q does not mention the brand", got)
	}
	if len(recorder.logged) != 0 {
		t.Errorf("logged %d conversations for an anonymous caller, want 0", len(recorder.logged))
	}
}

func TestEngineFallsBackWhenPatternsUnavailable(t *testing.T) {
	t.Parallel()

	patterns := &fakePatternRepo{listErr: errors.New("connection refused")}
	recorder := &fakeRecorder{}
	e := newTestEngine(patterns, recorder)

	got := e.GetResponse(context.Background(), "what courses do you have", nil)

	if got == "" {
		t.Fatal("expected a non-empty response when pattern retrieval fails")
	}
	if len(recorder.incremented) != 0 {
		t.Errorf("usage increments = %v, want none on retrieval failure", recorder.incremented)
	}
}

func TestEngineProgressWithoutEnrollment(t *testing.T) {
	t.Parallel()

	recorder := &fakeRecorder{}
	e := newTestEngine(&fakePatternRepo{}, recorder)

	got := e.GetResponse(context.Background(), "show my progress", testUser("Ada"))

	if !strings.Contains(got, "Ada") {
		t.Errorf("response %q does not address the user by name", got)
	}
	if strings.Contains(got, "%") {
		t.Errorf("response %q mentions percentages without any enrollment", got)
	}
	if len(recorder.logged) != 1 {
		t.Fatalf("logged %d conversations, want 1", len(recorder.logged))
	}
	if recorder.logged[0].Context[models.ContextKeySource] != models.ResponseSourceDefault {
		t.Errorf("logged source = %v, want default", recorder.logged[0].Context[models.ContextKeySource])
	}
	if recorder.logged[0].Context[models.ContextKeyIntent] != string(IntentProgress) {
		t.Errorf("logged intent = %v, want progress", recorder.logged[0].Context[models.ContextKeyIntent])
	}
}
