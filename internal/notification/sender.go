package notification

import (
	"context"

	"go.uber.org/zap"
)

// Message is a rendered notification ready for delivery.
type Message struct {
	To      string
	Subject string
	Body    string
}

//go:generate mockgen -source=sender.go -destination=mock/sender_mock.go -package=mock
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender is the default delivery backend: it logs the message instead of
// delivering it. Real delivery lives behind an external provider.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger ...*zap.Logger) *LogSender {
	l := zap.L().Named("notification.sender")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.sender")
	}
	return &LogSender{logger: l}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.Info("notification dispatched",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
