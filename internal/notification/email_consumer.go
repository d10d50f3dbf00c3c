package notification

import (
	"context"
	"encoding/json"

	"krishr/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmailRequests delivers queued emails through the provider client.
// Delivery failures leave the message uncommitted so the group redelivers;
// malformed payloads are committed and dropped.
func ConsumeEmailRequests(
	ctx context.Context,
	reader *kafkago.Reader,
	mailer Mailer,
	logger *zap.Logger,
) {
	log := logger.Named("notification.email_consumer")
	log.Info("email consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("email consumer stopped")
				return
			}
			log.Error("fetch email request message failed", zap.Error(err))
			continue
		}

		var event events.EmailRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode email_requested event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		err = mailer.Send(ctx, Message{
			To:      event.To,
			Cc:      event.Cc,
			Subject: event.Subject,
			HTML:    event.HTML,
		})
		if err != nil {
			log.Error("send email failed",
				zap.String("kind", event.Kind),
				zap.String("to", event.To),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit email request message failed", zap.Error(err))
			continue
		}

		log.Info("email sent",
			zap.String("kind", event.Kind),
			zap.String("to", event.To),
		)
	}
}
