package queue

import (
	"context"
	"time"
)

// MessageInterface abstracts a delivered message so processors can be
// tested against mocks instead of a live broker.
type MessageInterface interface {
	Ack() error
	Nack(requeue bool) error
	GetJob() *Job
}

// JobQueue is the broker-facing contract for publishing and consuming
// conversation jobs.
type JobQueue interface {
	// Enqueue publishes a job.
	Enqueue(ctx context.Context, job *Job) error

	// Consume streams messages as they arrive. prefetchCount bounds how
	// many unacknowledged messages a consumer may hold. The message
	// channel closes when the context is cancelled or the connection
	// fails; each message must be settled by the caller.
	Consume(ctx context.Context, prefetchCount int) (<-chan *Message, <-chan error, error)

	// Close tears down the broker connection.
	Close() error

	// HealthCheck verifies the connection is usable.
	HealthCheck(ctx context.Context) error
}

// DLQPurger is implemented by queues that can purge expired dead letters.
type DLQPurger interface {
	// PurgeOlderThan removes DLQ messages older than retention and returns
	// the number purged.
	PurgeOlderThan(ctx context.Context, retention time.Duration) (int, error)
}
