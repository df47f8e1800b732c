// Package workers contains the background processing side of the academy:
// the queue consumer that persists chat side effects and the scheduler that
// periodically mines conversation history into learned patterns.
package workers

import (
	"context"
	"fmt"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/database"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/queue"
	"go.uber.org/zap"
)

// EventProcessor consumes chat side-effect jobs and writes them to the
// database. The chat endpoint publishes these fire-and-forget, so this is
// the only place conversation logs and usage counters are persisted when the
// queue is in use.
type EventProcessor struct {
	conversations database.ConversationRepositoryInterface
	patterns      database.PatternRepositoryInterface
	logger        *zap.Logger
}

// NewEventProcessor creates a new event processor
func NewEventProcessor(
	conversations database.ConversationRepositoryInterface,
	patterns database.PatternRepositoryInterface,
	logger *zap.Logger,
) *EventProcessor {
	return &EventProcessor{
		conversations: conversations,
		patterns:      patterns,
		logger:        logger,
	}
}

// ProcessJob dispatches one queue message. Transient failures nack with
// requeue until the job's retry budget is spent, then the message goes to
// the DLQ. Expired jobs are dropped with an ack.
func (p *EventProcessor) ProcessJob(ctx context.Context, msg queue.MessageInterface) error {
	job := msg.GetJob()

	if job.IsExpired() {
		p.logger.Info("dropping_expired_job",
			zap.String("job_id", job.ID.String()),
			zap.String("job_type", string(job.Type)),
		)
		if err := msg.Ack(); err != nil {
			return fmt.Errorf("failed to ack expired job: %w", err)
		}
		return nil
	}

	var err error
	switch job.Type {
	case queue.JobTypeConversationLog:
		err = p.processConversationLog(ctx, job)
	case queue.JobTypeUsageIncrement:
		err = p.processUsageIncrement(ctx, job)
	default:
		// Unknown job type goes straight to the DLQ
		if nackErr := msg.Nack(false); nackErr != nil {
			p.logger.Warn("failed_to_nack_unknown_job", zap.Error(nackErr))
		}
		return fmt.Errorf("unknown job type: %s", job.Type)
	}

	if err != nil {
		return p.handleJobError(msg, job, err)
	}

	if ackErr := msg.Ack(); ackErr != nil {
		return fmt.Errorf("failed to ack job: %w", ackErr)
	}
	return nil
}

func (p *EventProcessor) processConversationLog(ctx context.Context, job *queue.Job) error {
	if job.UserID == nil {
		return fmt.Errorf("user_id is required for conversation log job")
	}

	rec := &models.ConversationRecord{
		UserID:      job.UserID,
		UserMessage: job.UserMessage,
		BotResponse: job.BotResponse,
		Context:     job.Context,
	}
	if err := p.conversations.Insert(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}

	p.logger.Debug("conversation_logged",
		zap.String("user_id", job.UserID.String()),
	)
	return nil
}

func (p *EventProcessor) processUsageIncrement(ctx context.Context, job *queue.Job) error {
	if job.Trigger == "" {
		return fmt.Errorf("trigger is required for usage increment job")
	}

	if err := p.patterns.IncrementUsage(ctx, job.Trigger); err != nil {
		return fmt.Errorf("failed to increment pattern usage: %w", err)
	}

	p.logger.Debug("pattern_usage_incremented",
		zap.String("trigger", job.Trigger),
	)
	return nil
}

// handleJobError applies the retry policy: nack with requeue while the job
// can retry, nack to the DLQ once the budget is spent.
func (p *EventProcessor) handleJobError(msg queue.MessageInterface, job *queue.Job, err error) error {
	if job.CanRetry() {
		job.IncrementRetry()
		p.logger.Warn("job_failed_will_retry",
			zap.String("job_id", job.ID.String()),
			zap.String("job_type", string(job.Type)),
			zap.Int("retry_count", job.RetryCount),
			zap.Int("max_retries", job.MaxRetries),
			zap.Error(err),
		)
		if nackErr := msg.Nack(true); nackErr != nil {
			p.logger.Warn("failed_to_nack_job", zap.Error(nackErr))
		}
		return fmt.Errorf("job failed (will retry): %w", err)
	}

	p.logger.Error("job_failed_sending_to_dlq",
		zap.String("job_id", job.ID.String()),
		zap.String("job_type", string(job.Type)),
		zap.Int("max_retries", job.MaxRetries),
		zap.Error(err),
	)
	if nackErr := msg.Nack(false); nackErr != nil {
		p.logger.Warn("failed_to_nack_job_to_dlq", zap.Error(nackErr))
	}
	return fmt.Errorf("job failed (max retries): %w", err)
}
