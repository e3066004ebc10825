package chat

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Client → server event types.
const (
	EventTypeMessageSend = "message.send"
	EventTypeRoomJoin    = "room.join"
	EventTypeRoomLeave   = "room.leave"
	EventTypePing        = "ping"
)

// Server → client event types.
const (
	EventTypeMessageNew = "message.new"
	EventTypePresence   = "presence"
	EventTypePong       = "pong"
	EventTypeError      = "error"
)

// Event is the envelope for every websocket frame, both directions.
type Event struct {
	Type      string          `json:"type"`
	Room      string          `json:"room,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

type MessageSendPayload struct {
	Content string `json:"content"`
}

// ChatMessage is what travels over the redis channel and back out to every
// subscribed client on every API instance.
type ChatMessage struct {
	Room     string    `json:"room"`
	SenderID uuid.UUID `json:"sender_id"`
	Content  string    `json:"content"`
	SentAt   time.Time `json:"sent_at"`
}

type PresencePayload struct {
	UserID uuid.UUID `json:"user_id"`
	Status string    `json:"status"` // "online" | "offline"
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent builds a server→client event stamped with the current time.
func NewEvent(eventType, room string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Room:      room,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}
