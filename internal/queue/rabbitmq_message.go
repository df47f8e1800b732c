package queue

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

// Message wraps a delivered job together with the channel state needed to
// settle it. Consumers must call Ack or Nack exactly once per message.
type Message struct {
	Job         *Job
	DeliveryTag uint64
	Channel     *amqp.Channel
}

func (m *Message) GetJob() *Job {
	return m.Job
}

// Ack confirms successful processing and removes the message from the queue.
func (m *Message) Ack() error {
	return m.Channel.Ack(m.DeliveryTag, false)
}

// Nack rejects the message. With requeue false the broker dead-letters it.
func (m *Message) Nack(requeue bool) error {
	return m.Channel.Nack(m.DeliveryTag, false, requeue)
}
