package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/essomba/schoolhub/config"
	"github.com/essomba/schoolhub/model"
	"github.com/segmentio/kafka-go"
)

var messagesProcessed int64

func main() {
	fmt.Println("Starting Notification Worker")

	cfg, err := config.Initialise("config.yaml", false)
	if err != nil {
		log.Printf("Config file not found or invalid, using environment variables: %v", err)
		cfg, err = config.Initialise("", true)
		if err != nil {
			log.Fatal("Failed to load configuration:", err)
		}
	}

	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.NotificationTopic,
		GroupID: cfg.Kafka.ConsumerGroup,
	})
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("Received shutdown signal, stopping worker...")
		cancel()
	}()

	fmt.Println("Notification processor worker started")
	if err := processNotifications(ctx, consumer); err != nil && err != context.Canceled {
		log.Fatal("Worker error:", err)
	}

	fmt.Println("Worker stopped gracefully")
}

func processNotifications(ctx context.Context, consumer *kafka.Reader) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			msg, err := consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Printf("Error reading message: %v", err)
				continue
			}

			if err := processNotification(msg); err != nil {
				log.Printf("Error processing notification: %v", err)
			}

			atomic.AddInt64(&messagesProcessed, 1)
		}
	}
}

func processNotification(msg kafka.Message) error {
	var notification model.NotificationMessage
	if err := json.Unmarshal(msg.Value, &notification); err != nil {
		return fmt.Errorf("failed to unmarshal notification message: %w", err)
	}

	log.Printf("Processing notification %s for audience %v", notification.NotificationID, notification.Audience)

	// One email per audience role
	for _, role := range notification.Audience {
		email := notification.GenerateAnnouncementEmail(role)
		if err := sendEmailMock(email); err != nil {
			return fmt.Errorf("failed to send email for role %s: %w", role, err)
		}
	}

	log.Printf("Successfully delivered notification %s to %d audience(s)",
		notification.NotificationID, len(notification.Audience))

	return nil
}

// sendEmailMock simulates email sending by logging to console
func sendEmailMock(template *model.EmailTemplate) error {
	log.Printf("MOCK EMAIL SENT:")
	log.Printf("   To: %s", template.To)
	log.Printf("   Subject: %s", template.Subject)
	log.Printf("   Body:\n%s", template.Body)

	return nil
}
