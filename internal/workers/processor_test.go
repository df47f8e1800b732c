package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/queue"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeMessage struct {
	job     *queue.Job
	acked   bool
	nacked  bool
	requeue bool
}

func (m *fakeMessage) Ack() error {
	m.acked = true
	return nil
}

func (m *fakeMessage) Nack(requeue bool) error {
	m.nacked = true
	m.requeue = requeue
	return nil
}

func (m *fakeMessage) GetJob() *queue.Job {
	return m.job
}

type fakeConversationRepo struct {
	inserted  []*models.ConversationRecord
	insertErr error
}

func (f *fakeConversationRepo) Insert(ctx context.Context, rec *models.ConversationRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, rec)
	return nil
}

func (f *fakeConversationRepo) ListRecent(ctx context.Context, limit int) ([]*models.ConversationRecord, error) {
	return f.inserted, nil
}

func (f *fakeConversationRepo) Count(ctx context.Context) (int, error) {
	return len(f.inserted), nil
}

type fakePatternRepo struct {
	incremented  []string
	incrementErr error
}

func (f *fakePatternRepo) Upsert(ctx context.Context, p *models.LearnedPattern) error {
	return nil
}

func (f *fakePatternRepo) ListAboveConfidence(ctx context.Context, minConfidence float64) ([]*models.LearnedPattern, error) {
	return nil, nil
}

func (f *fakePatternRepo) IncrementUsage(ctx context.Context, trigger string) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	f.incremented = append(f.incremented, trigger)
	return nil
}

func (f *fakePatternRepo) Stats(ctx context.Context) (int, float64, int, *time.Time, error) {
	return 0, 0, 0, nil, nil
}

func TestProcessConversationLogJob(t *testing.T) {
	t.Parallel()

	conversations := &fakeConversationRepo{}
	p := NewEventProcessor(conversations, &fakePatternRepo{}, zap.NewNop())

	userID := uuid.New()
	msg := &fakeMessage{job: queue.NewConversationLogJob(userID, "hello", "Hi there!", map[string]any{
		models.ContextKeySource: models.ResponseSourceDefault,
	})}

	if err := p.ProcessJob(context.Background(), msg); err != nil {
		t.Fatalf("ProcessJob returned error: %v", err)
	}
	if !msg.acked {
		t.Error("expected the message to be acked")
	}
	if len(conversations.inserted) != 1 {
		t.Fatalf("inserted %d records, want 1", len(conversations.inserted))
	}
	rec := conversations.inserted[0]
	if rec.UserID == nil || *rec.UserID != userID {
		t.Errorf("inserted record user = %v, want %s", rec.UserID, userID)
	}
	if rec.UserMessage != "hello" || rec.BotResponse != "Hi there!" {
		t.Errorf("inserted record payload = %q / %q", rec.UserMessage, rec.BotResponse)
	}
}

func TestProcessUsageIncrementJob(t *testing.T) {
	t.Parallel()

	patterns := &fakePatternRepo{}
	p := NewEventProcessor(&fakeConversationRepo{}, patterns, zap.NewNop())

	msg := &fakeMessage{job: queue.NewUsageIncrementJob("when does the course start")}

	if err := p.ProcessJob(context.Background(), msg); err != nil {
		t.Fatalf("ProcessJob returned error: %v", err)
	}
	if !msg.acked {
		t.Error("expected the message to be acked")
	}
	if len(patterns.incremented) != 1 || patterns.incremented[0] != "when does the course start" {
		t.Errorf("incremented = %v", patterns.incremented)
	}
}

func TestProcessJobRetriesOnFailure(t *testing.T) {
	t.Parallel()

	conversations := &fakeConversationRepo{insertErr: errors.New("db down")}
	p := NewEventProcessor(conversations, &fakePatternRepo{}, zap.NewNop())

	msg := &fakeMessage{job: queue.NewConversationLogJob(uuid.New(), "hello", "hi", nil)}

	if err := p.ProcessJob(context.Background(), msg); err == nil {
		t.Fatal("expected an error from a failing insert")
	}
	if !msg.nacked || !msg.requeue {
		t.Errorf("expected nack with requeue, got nacked=%v requeue=%v", msg.nacked, msg.requeue)
	}
	if msg.job.RetryCount != 1 {
		t.Errorf("retry count = %d, want 1", msg.job.RetryCount)
	}
}

func TestProcessJobDeadLettersAfterMaxRetries(t *testing.T) {
	t.Parallel()

	patterns := &fakePatternRepo{incrementErr: errors.New("db down")}
	p := NewEventProcessor(&fakeConversationRepo{}, patterns, zap.NewNop())

	job := queue.NewUsageIncrementJob("hello")
	job.RetryCount = job.MaxRetries
	msg := &fakeMessage{job: job}

	if err := p.ProcessJob(context.Background(), msg); err == nil {
		t.Fatal("expected an error once retries are exhausted")
	}
	if !msg.nacked || msg.requeue {
		t.Errorf("expected nack without requeue, got nacked=%v requeue=%v", msg.nacked, msg.requeue)
	}
}

func TestProcessJobDropsExpired(t *testing.T) {
	t.Parallel()

	conversations := &fakeConversationRepo{}
	p := NewEventProcessor(conversations, &fakePatternRepo{}, zap.NewNop())

	past := time.Now().Add(-time.Hour)
	job := queue.NewConversationLogJob(uuid.New(), "hello", "hi", nil)
	job.NotAfter = &past
	msg := &fakeMessage{job: job}

	if err := p.ProcessJob(context.Background(), msg); err != nil {
		t.Fatalf("ProcessJob returned error: %v", err)
	}
	if !msg.acked {
		t.Error("expected the expired message to be acked and dropped")
	}
	if len(conversations.inserted) != 0 {
		t.Errorf("inserted %d records for an expired job, want 0", len(conversations.inserted))
	}
}

func TestProcessJobUnknownTypeGoesToDLQ(t *testing.T) {
	t.Parallel()

	p := NewEventProcessor(&fakeConversationRepo{}, &fakePatternRepo{}, zap.NewNop())

	msg := &fakeMessage{job: &queue.Job{ID: uuid.New(), Type: "mystery"}}

	if err := p.ProcessJob(context.Background(), msg); err == nil {
		t.Fatal("expected an error for an unknown job type")
	}
	if !msg.nacked || msg.requeue {
		t.Errorf("expected nack without requeue, got nacked=%v requeue=%v", msg.nacked, msg.requeue)
	}
}

type fakeMiner struct {
	calls int
	err   error
}

func (f *fakeMiner) MinePatterns(ctx context.Context) error {
	f.calls++
	return f.err
}

func TestMiningSchedulerRunsImmediately(t *testing.T) {
	t.Parallel()

	miner := &fakeMiner{}
	s := NewMiningScheduler(miner, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Start returned %v, want context.Canceled", err)
	}
	if miner.calls != 1 {
		t.Errorf("miner ran %d times, want the initial pass", miner.calls)
	}
}

func TestMiningSchedulerTicks(t *testing.T) {
	t.Parallel()

	miner := &fakeMiner{}
	s := NewMiningScheduler(miner, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_ = s.Start(ctx)

	if miner.calls < 2 {
		t.Errorf("miner ran %d times, want at least the initial pass plus one tick", miner.calls)
	}
}

func TestMiningSchedulerSurvivesFailure(t *testing.T) {
	t.Parallel()

	miner := &fakeMiner{err: errors.New("db down")}
	s := NewMiningScheduler(miner, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	_ = s.Start(ctx)

	if miner.calls < 2 {
		t.Errorf("miner ran %d times, want the loop to continue past failures", miner.calls)
	}
}
