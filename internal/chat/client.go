package chat

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
	sendBufSize  = 256
)

// Client is one websocket connection plus its room subscriptions.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID uuid.UUID
	logger *zap.Logger

	rooms map[string]struct{}
	mu    sync.RWMutex

	send chan []byte
	done chan struct{}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		logger: hub.logger.Named("client"),
		rooms:  make(map[string]struct{}),
		send:   make(chan []byte, sendBufSize),
		done:   make(chan struct{}),
	}
}

func (c *Client) InRoom(room string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.rooms[room]
	return ok
}

func (c *Client) Join(room string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms[room] = struct{}{}
}

func (c *Client) Leave(room string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rooms, room)
}

// ReadPump reads frames off the socket and routes them until the peer goes
// away. Runs as its own goroutine per connection.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		var event Event
		if err := wsjson.Read(context.Background(), c.conn, &event); err != nil {
			if websocket.CloseStatus(err) == -1 {
				c.logger.Warn("read failed", zap.String("user_id", c.userID.String()), zap.Error(err))
			}
			return
		}
		c.handleEvent(&event)
	}
}

// WritePump drains the send buffer onto the socket and keeps the connection
// alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}

func (c *Client) handleEvent(event *Event) {
	switch event.Type {
	case EventTypeRoomJoin:
		room := strings.TrimSpace(event.Room)
		if room == "" {
			c.sendError("INVALID_PAYLOAD", "room is required")
			return
		}
		c.Join(room)

	case EventTypeRoomLeave:
		if event.Room == "" {
			c.sendError("INVALID_PAYLOAD", "room is required")
			return
		}
		c.Leave(event.Room)

	case EventTypeMessageSend:
		var p MessageSendPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil || strings.TrimSpace(p.Content) == "" {
			c.sendError("INVALID_PAYLOAD", "message.send needs non-empty content")
			return
		}
		if event.Room == "" {
			c.sendError("INVALID_PAYLOAD", "room is required")
			return
		}
		msg := ChatMessage{
			Room:     event.Room,
			SenderID: c.userID,
			Content:  p.Content,
			SentAt:   time.Now().UTC(),
		}
		if err := c.hub.publishMessage(context.Background(), msg); err != nil {
			c.logger.Warn("publish failed", zap.String("room", event.Room), zap.Error(err))
			c.sendError("PUBLISH_FAILED", "message could not be relayed")
		}

	case EventTypePing:
		c.sendPong()

	default:
		c.sendError("UNKNOWN_EVENT", "unknown event type: "+event.Type)
	}
}

func (c *Client) sendPong() {
	data, _ := json.Marshal(Event{Type: EventTypePong})
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) sendError(code, message string) {
	evt, err := NewEvent(EventTypeError, "", ErrorPayload{Code: code, Message: message})
	if err != nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
