package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"worknest/internal/events"
	"worknest/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeBookingLifecycle turns booking lifecycle events into user-facing
// notifications. Delivery is best-effort: the sender carries its own bounded
// retry, and a message that still fails is committed and dropped so the
// stream never wedges on one recipient.
func ConsumeBookingLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	sender notification.Sender,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.booking_lifecycle")
	log.Info("booking lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("booking lifecycle consumer stopped")
				return
			}
			log.Error("fetch booking lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.BookingLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode booking lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := sender.Send(ctx, renderNotification(event)); err != nil {
			log.Error("booking notification delivery failed",
				zap.String("booking_id", event.BookingID),
				zap.String("event_type", event.EventType),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit booking lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("booking lifecycle event handled",
			zap.String("booking_id", event.BookingID),
			zap.String("event_type", event.EventType),
		)
	}
}

func renderNotification(event events.BookingLifecycleEvent) notification.Message {
	var subject string
	switch event.EventType {
	case events.BookingCreated:
		subject = "Your workspace booking is confirmed"
	case events.BookingCancelled:
		subject = "Your workspace booking was cancelled"
	case events.BookingCompleted:
		subject = "Thanks for checking out"
	case events.BookingExpired:
		subject = "Your workspace booking has expired"
	default:
		subject = "Booking update"
	}

	return notification.Message{
		To:      event.UserID,
		Subject: subject,
		Body: fmt.Sprintf("Booking %s for workspace %s: %s (window %s - %s)",
			event.BookingID, event.WorkspaceID, event.EventType,
			event.StartAt.Format("2006-01-02 15:04"), event.EndAt.Format("2006-01-02 15:04")),
	}
}
