package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type flakySender struct {
	failures int
	calls    int
}

func (f *flakySender) Send(ctx context.Context, msg Message) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("smtp unreachable")
	}
	return nil
}

func TestRetryingSender_SucceedsOnThirdAttempt(t *testing.T) {
	inner := &flakySender{failures: 2}
	s := NewRetryingSender(inner, 10*time.Millisecond)

	var slept []time.Duration
	s.sleep = func(d time.Duration) { slept = append(slept, d) }

	err := s.Send(context.Background(), Message{To: "guest@example.com"})
	assert.NoError(t, err)
	assert.Equal(t, 3, inner.calls)

	// linear backoff: delay, then 2*delay
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, slept)
}

func TestRetryingSender_GivesUpAfterMaxAttempts(t *testing.T) {
	inner := &flakySender{failures: 10}
	s := NewRetryingSender(inner, time.Millisecond)
	s.sleep = func(time.Duration) {}

	err := s.Send(context.Background(), Message{To: "guest@example.com"})
	assert.Error(t, err)
	assert.Equal(t, 3, inner.calls)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestRetryingSender_StopsOnCancelledContext(t *testing.T) {
	inner := &flakySender{failures: 10}
	s := NewRetryingSender(inner, time.Millisecond)
	s.sleep = func(time.Duration) {}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Send(ctx, Message{To: "guest@example.com"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, inner.calls)
}
