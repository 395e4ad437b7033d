package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/essomba/schoolhub/config"
	"github.com/essomba/schoolhub/model"
	"github.com/segmentio/kafka-go"
)

// Publisher fans notifications out to the email worker via Kafka. Delivery
// is best-effort relative to the database row: the notification is already
// persisted when the message is published.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(cfg *config.Kafka) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.NotificationTopic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, notification *model.Notification) error {
	message := model.NotificationMessage{
		NotificationID: notification.ID,
		Title:          notification.Title,
		Body:           notification.Body,
		Audience:       notification.Audience,
		SenderID:       notification.SenderID,
		Timestamp:      time.Now().UTC(),
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode notification message: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(notification.ID),
		Value: payload,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
