package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"krishr/internal/events"
	"krishr/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunMailer consumes queued email requests and delivers them through the
// transactional mail provider. Provider credentials come from the
// environment only.
func RunMailer() error {
	logger := zap.L().Named("app.mailer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	mailBaseURL := os.Getenv("MAIL_API_BASE_URL")
	mailAPIKey := os.Getenv("MAIL_API_KEY")
	if mailBaseURL == "" || mailAPIKey == "" {
		return fmt.Errorf("MAIL_API_BASE_URL and MAIL_API_KEY are required")
	}

	mailer := notification.NewMailClient(notification.MailClientConfig{
		BaseURL: mailBaseURL,
		APIKey:  mailAPIKey,
		From:    os.Getenv("MAIL_FROM"),
	})

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.EmailRequestedTopic,
		GroupID:        "krishr-mailer",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go notification.ConsumeEmailRequests(ctx, reader, mailer, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("mailer shutting down")
	cancel()

	return nil
}
