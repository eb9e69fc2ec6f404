// Package kafka implements the notifier port on a Kafka topic. The service
// does not talk to email or SMS gateways itself: it publishes notification
// envelopes and a downstream consumer owns the actual delivery.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"shipping/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// notificationEnvelope is the JSON wire format published to the topic.
type notificationEnvelope struct {
	Channel   string    `json:"channel"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	QueuedAt  time.Time `json:"queued_at"`
}

// Notifier publishes notifications to a Kafka topic.
type Notifier struct {
	writer *kafka.Writer
}

// NewNotifier creates a notifier publishing to the given topic on the given
// broker. Messages are keyed by recipient so notifications to one recipient
// stay ordered within a partition.
func NewNotifier(brokerAddr string, topic string) *Notifier {
	return &Notifier{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokerAddr),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Notify publishes one notification envelope. Callers treat failures as
// best effort; this adapter just reports them.
func (n *Notifier) Notify(ctx context.Context, notification ports.Notification) error {
	payload, err := json.Marshal(notificationEnvelope{
		Channel:   string(notification.Channel),
		Recipient: notification.Recipient,
		Subject:   notification.Subject,
		Body:      notification.Body,
		QueuedAt:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(notification.Recipient),
		Value: payload,
	})
}

// Close shuts down the underlying Kafka writer.
func (n *Notifier) Close() error {
	return n.writer.Close()
}
