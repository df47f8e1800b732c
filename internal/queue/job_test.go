package queue

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewConversationLogJob(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	job := NewConversationLogJob(userID, "hello", "Welcome!", map[string]any{"source": "default"})

	if job.Type != JobTypeConversationLog {
		t.Errorf("expected type %s, got %s", JobTypeConversationLog, job.Type)
	}
	if job.UserID == nil || *job.UserID != userID {
		t.Errorf("expected user ID %s, got %v", userID, job.UserID)
	}
	if job.UserMessage != "hello" || job.BotResponse != "Welcome!" {
		t.Errorf("unexpected payload: %q / %q", job.UserMessage, job.BotResponse)
	}
	if job.MaxRetries != 3 {
		t.Errorf("expected 3 max retries, got %d", job.MaxRetries)
	}
	if job.ID == uuid.Nil {
		t.Error("expected generated job ID")
	}
}

func TestNewUsageIncrementJob(t *testing.T) {
	t.Parallel()

	job := NewUsageIncrementJob("when is the next course")

	if job.Type != JobTypeUsageIncrement {
		t.Errorf("expected type %s, got %s", JobTypeUsageIncrement, job.Type)
	}
	if job.Trigger != "when is the next course" {
		t.Errorf("unexpected trigger %q", job.Trigger)
	}
	if job.UserID != nil {
		t.Error("usage increment jobs carry no user ID")
	}
	if job.MaxRetries != 1 {
		t.Errorf("expected 1 max retry, got %d", job.MaxRetries)
	}
}

func TestJob_ShouldProcess(t *testing.T) {
	t.Parallel()

	past := time.Now().Add(-1 * time.Hour)
	future := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name      string
		notBefore *time.Time
		notAfter  *time.Time
		expected  bool
	}{
		{
			name:     "no window - process immediately",
			expected: true,
		},
		{
			name:      "not before in past - ready",
			notBefore: &past,
			expected:  true,
		},
		{
			name:      "not before in future - not ready",
			notBefore: &future,
			expected:  false,
		},
		{
			name:     "not after in past - expired",
			notAfter: &past,
			expected: false,
		},
		{
			name:      "inside window",
			notBefore: &past,
			notAfter:  &future,
			expected:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			job := NewUsageIncrementJob("trigger")
			job.NotBefore = tt.notBefore
			job.NotAfter = tt.notAfter
			if got := job.ShouldProcess(); got != tt.expected {
				t.Errorf("ShouldProcess() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestJob_IsExpired(t *testing.T) {
	t.Parallel()

	job := NewUsageIncrementJob("trigger")
	if job.IsExpired() {
		t.Error("job with no NotAfter should never expire")
	}

	past := time.Now().Add(-1 * time.Minute)
	job.NotAfter = &past
	if !job.IsExpired() {
		t.Error("job past NotAfter should be expired")
	}
}

func TestJob_Retry(t *testing.T) {
	t.Parallel()

	job := NewUsageIncrementJob("trigger")
	if !job.CanRetry() {
		t.Error("fresh job should be retryable")
	}

	job.IncrementRetry()
	if job.CanRetry() {
		t.Errorf("job at max retries (%d) should not be retryable", job.MaxRetries)
	}
	if job.RetryCount != 1 {
		t.Errorf("expected retry count 1, got %d", job.RetryCount)
	}
}
