package chat

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MessagePublisher pushes an inbound chat message onto the shared bus so
// every API instance sees it, this one included.
type MessagePublisher interface {
	Publish(ctx context.Context, msg ChatMessage) error
}

// Hub tracks the websocket clients of this process and fans messages out to
// room subscribers. Persistence is out of scope: a message that reaches no
// connected subscriber is gone.
type Hub struct {
	clients map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan *broadcastMsg

	publisher MessagePublisher
	logger    *zap.Logger
}

type broadcastMsg struct {
	room      string
	data      []byte
	excludeID *uuid.UUID
}

func NewHub(publisher MessagePublisher, logger ...*zap.Logger) *Hub {
	l := zap.L().Named("chat.hub")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("chat.hub")
	}
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *broadcastMsg, 256),
		publisher:  publisher,
		logger:     l,
	}
}

// Run is the hub's event loop; call it in a goroutine. It owns the clients
// map, so registration and broadcast never race.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.clients[client.userID] = client
			h.logger.Info("client connected",
				zap.String("user_id", client.userID.String()),
				zap.Int("total", len(h.clients)),
			)
			h.broadcastPresence(client.userID, "online")

		case client := <-h.unregister:
			if _, ok := h.clients[client.userID]; ok {
				delete(h.clients, client.userID)
				close(client.send)
				close(client.done)
				h.logger.Info("client disconnected",
					zap.String("user_id", client.userID.String()),
					zap.Int("total", len(h.clients)),
				)
				h.broadcastPresence(client.userID, "offline")
			}

		case msg := <-h.broadcast:
			for _, client := range h.clients {
				if msg.excludeID != nil && client.userID == *msg.excludeID {
					continue
				}
				if !client.InRoom(msg.room) {
					continue
				}
				select {
				case client.send <- msg.data:
				default:
					// Slow consumer; drop the connection rather than block
					// the whole hub.
					delete(h.clients, client.userID)
					close(client.send)
					close(client.done)
				}
			}
		}
	}
}

// BroadcastToRoom delivers an event to every local subscriber of a room.
// Called by the relay when a message arrives on the redis channel.
func (h *Hub) BroadcastToRoom(room string, event *Event, excludeUserID *uuid.UUID) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("event marshal failed", zap.Error(err))
		return
	}
	h.broadcast <- &broadcastMsg{
		room:      room,
		data:      data,
		excludeID: excludeUserID,
	}
}

func (h *Hub) publishMessage(ctx context.Context, msg ChatMessage) error {
	if h.publisher == nil {
		// No relay wired (single instance); loop back directly.
		event, err := NewEvent(EventTypeMessageNew, msg.Room, msg)
		if err != nil {
			return err
		}
		h.BroadcastToRoom(msg.Room, event, nil)
		return nil
	}
	return h.publisher.Publish(ctx, msg)
}

func (h *Hub) broadcastPresence(userID uuid.UUID, status string) {
	evt, err := NewEvent(EventTypePresence, "", PresencePayload{
		UserID: userID,
		Status: status,
	})
	if err != nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	for _, client := range h.clients {
		if client.userID == userID {
			continue
		}
		select {
		case client.send <- data:
		default:
		}
	}
}
