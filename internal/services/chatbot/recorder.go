package chatbot

import (
	"context"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/database"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/queue"
	"go.uber.org/zap"
)

// QueueRecorder publishes conversation logs and usage increments as queue
// jobs, keeping persistence latency off the response path. Publish failures
// are logged and dropped; history logging is not correctness-critical.
type QueueRecorder struct {
	jobQueue queue.JobQueue
	logger   *zap.Logger
}

// NewQueueRecorder creates a recorder backed by the job queue.
func NewQueueRecorder(jobQueue queue.JobQueue, logger *zap.Logger) *QueueRecorder {
	return &QueueRecorder{jobQueue: jobQueue, logger: logger}
}

// LogConversation enqueues a conversation log job.
func (r *QueueRecorder) LogConversation(ctx context.Context, rec *models.ConversationRecord) {
	if rec.UserID == nil {
		return
	}
	job := queue.NewConversationLogJob(*rec.UserID, rec.UserMessage, rec.BotResponse, rec.Context)
	if err := r.jobQueue.Enqueue(ctx, job); err != nil {
		r.logger.Warn("failed_to_enqueue_conversation_log",
			zap.String("user_id", rec.UserID.String()),
			zap.Error(err),
		)
	}
}

// IncrementUsage enqueues a usage increment job.
func (r *QueueRecorder) IncrementUsage(ctx context.Context, trigger string) {
	if err := r.jobQueue.Enqueue(ctx, queue.NewUsageIncrementJob(trigger)); err != nil {
		r.logger.Warn("failed_to_enqueue_usage_increment",
			zap.String("trigger", trigger),
			zap.Error(err),
		)
	}
}

// DirectRecorder writes conversation logs and usage increments straight to
// the repositories. Used when no queue is configured. Failures are logged
// and swallowed so the response path never degrades.
type DirectRecorder struct {
	conversations database.ConversationRepositoryInterface
	patterns      database.PatternRepositoryInterface
	logger        *zap.Logger
}

// NewDirectRecorder creates a recorder that writes synchronously.
func NewDirectRecorder(conversations database.ConversationRepositoryInterface, patterns database.PatternRepositoryInterface, logger *zap.Logger) *DirectRecorder {
	return &DirectRecorder{conversations: conversations, patterns: patterns, logger: logger}
}

// LogConversation appends the record to the conversation history.
func (r *DirectRecorder) LogConversation(ctx context.Context, rec *models.ConversationRecord) {
	if err := r.conversations.Insert(ctx, rec); err != nil {
		r.logger.Warn("failed_to_log_conversation", zap.Error(err))
	}
}

// IncrementUsage bumps the pattern usage counter.
func (r *DirectRecorder) IncrementUsage(ctx context.Context, trigger string) {
	if err := r.patterns.IncrementUsage(ctx, trigger); err != nil {
		r.logger.Warn("failed_to_increment_pattern_usage",
			zap.String("trigger", trigger),
			zap.Error(err),
		)
	}
}

// Ensure implementations satisfy the interface
var (
	_ Recorder = (*QueueRecorder)(nil)
	_ Recorder = (*DirectRecorder)(nil)
)
