package chat

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RelayChannel is the redis pub/sub channel every API instance shares.
const RelayChannel = "worknest:chat:relay"

// Relay bridges the local hub and redis pub/sub so chat works across
// multiple API instances: outbound messages are published, and a subscriber
// loop fans inbound messages back into the hub.
type Relay struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewRelay(rdb *redis.Client, logger ...*zap.Logger) *Relay {
	l := zap.L().Named("chat.relay")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("chat.relay")
	}
	return &Relay{rdb: rdb, logger: l}
}

func (r *Relay) Publish(ctx context.Context, msg ChatMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return r.rdb.Publish(ctx, RelayChannel, payload).Err()
}

// Run subscribes to the relay channel and pushes every message into the hub
// until the context is cancelled. Call it in a goroutine next to hub.Run.
func (r *Relay) Run(ctx context.Context, hub *Hub) {
	sub := r.rdb.Subscribe(ctx, RelayChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			var msg ChatMessage
			if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
				r.logger.Warn("relay payload unmarshal failed", zap.Error(err))
				continue
			}
			event, err := NewEvent(EventTypeMessageNew, msg.Room, msg)
			if err != nil {
				continue
			}
			hub.BroadcastToRoom(msg.Room, event, nil)
		}
	}
}
