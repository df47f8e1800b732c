package queue

import (
	"time"

	"github.com/google/uuid"
)

// JobType represents the type of job
type JobType string

const (
	// JobTypeConversationLog appends a chat exchange to the conversation
	// history. Published fire-and-forget by the chat endpoint.
	JobTypeConversationLog JobType = "conversation_log"
	// JobTypeUsageIncrement bumps a learned pattern's usage counter.
	JobTypeUsageIncrement JobType = "usage_increment"
)

// Job represents a job in the queue
type Job struct {
	ID          uuid.UUID      `json:"id"`
	Type        JobType        `json:"type"`
	UserID      *uuid.UUID     `json:"user_id,omitempty"`      // Set for conversation log jobs
	Trigger     string         `json:"trigger,omitempty"`      // Set for usage increment jobs
	UserMessage string         `json:"user_message,omitempty"` // Conversation log payload
	BotResponse string         `json:"bot_response,omitempty"`
	Context     map[string]any `json:"context,omitempty"`
	NotBefore   *time.Time     `json:"not_before,omitempty"` // Earliest time to process job (nil = immediate)
	NotAfter    *time.Time     `json:"not_after,omitempty"`  // Latest time to process job (nil = no expiration)
	CreatedAt   time.Time      `json:"created_at"`
	RetryCount  int            `json:"retry_count"`
	MaxRetries  int            `json:"max_retries"`
}

// NewConversationLogJob creates a job that records a chat exchange.
func NewConversationLogJob(userID uuid.UUID, userMessage, botResponse string, context map[string]any) *Job {
	return &Job{
		ID:          uuid.New(),
		Type:        JobTypeConversationLog,
		UserID:      &userID,
		UserMessage: userMessage,
		BotResponse: botResponse,
		Context:     context,
		CreatedAt:   time.Now(),
		MaxRetries:  3,
	}
}

// NewUsageIncrementJob creates a job that bumps a pattern usage counter.
// Increments are best-effort, so they get a single retry only.
func NewUsageIncrementJob(trigger string) *Job {
	return &Job{
		ID:         uuid.New(),
		Type:       JobTypeUsageIncrement,
		Trigger:    trigger,
		CreatedAt:  time.Now(),
		MaxRetries: 1,
	}
}

// ShouldProcess checks if the job should be processed now
func (j *Job) ShouldProcess() bool {
	now := time.Now()

	if j.NotBefore != nil && now.Before(*j.NotBefore) {
		return false
	}
	if j.NotAfter != nil && now.After(*j.NotAfter) {
		return false
	}

	return true
}

// IsExpired checks if the job has expired
func (j *Job) IsExpired() bool {
	if j.NotAfter == nil {
		return false
	}

	return time.Now().After(*j.NotAfter)
}

// CanRetry checks if the job can be retried
func (j *Job) CanRetry() bool {
	return j.RetryCount < j.MaxRetries
}

// IncrementRetry increments the retry count
func (j *Job) IncrementRetry() {
	j.RetryCount++
}
