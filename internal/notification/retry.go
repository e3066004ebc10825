package notification

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const defaultMaxAttempts = 3

// RetryingSender wraps a Sender with a bounded retry: maxAttempts tries with
// linear backoff (delay, 2*delay, ...). The retry is local to the sender;
// callers treat the final error as best-effort.
type RetryingSender struct {
	inner       Sender
	maxAttempts int
	backoff     time.Duration
	logger      *zap.Logger

	sleep func(time.Duration) // swapped out in tests
}

func NewRetryingSender(inner Sender, backoff time.Duration, logger ...*zap.Logger) *RetryingSender {
	l := zap.L().Named("notification.retry")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.retry")
	}
	return &RetryingSender{
		inner:       inner,
		maxAttempts: defaultMaxAttempts,
		backoff:     backoff,
		logger:      l,
		sleep:       time.Sleep,
	}
}

func (s *RetryingSender) Send(ctx context.Context, msg Message) error {
	var lastErr error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = s.inner.Send(ctx, msg)
		if lastErr == nil {
			return nil
		}

		s.logger.Warn("notification send failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.maxAttempts),
			zap.String("to", msg.To),
			zap.Error(lastErr),
		)

		if attempt < s.maxAttempts {
			s.sleep(time.Duration(attempt) * s.backoff)
		}
	}

	return fmt.Errorf("send failed after %d attempts: %w", s.maxAttempts, lastErr)
}
