package chat

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func waitForEvent(t *testing.T, ch chan []byte) Event {
	t.Helper()
	select {
	case data := <-ch:
		var evt Event
		assert.NoError(t, json.Unmarshal(data, &evt))
		return evt
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func drainPresence(t *testing.T, ch chan []byte) {
	t.Helper()
	evt := waitForEvent(t, ch)
	assert.Equal(t, EventTypePresence, evt.Type)
}

func TestHub_RoutesMessagesToRoomSubscribers(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	alice := NewClient(hub, nil, uuid.New())
	bob := NewClient(hub, nil, uuid.New())
	carol := NewClient(hub, nil, uuid.New())

	hub.register <- alice
	hub.register <- bob
	drainPresence(t, alice.send) // bob came online
	hub.register <- carol
	drainPresence(t, alice.send)
	drainPresence(t, bob.send)

	alice.Join("support")
	bob.Join("support")
	// carol never joins.

	msg := ChatMessage{Room: "support", SenderID: alice.userID, Content: "hello", SentAt: time.Now().UTC()}
	assert.NoError(t, hub.publishMessage(ctx, msg))

	for _, c := range []*Client{alice, bob} {
		evt := waitForEvent(t, c.send)
		assert.Equal(t, EventTypeMessageNew, evt.Type)
		assert.Equal(t, "support", evt.Room)

		var got ChatMessage
		assert.NoError(t, json.Unmarshal(evt.Payload, &got))
		assert.Equal(t, "hello", got.Content)
		assert.Equal(t, alice.userID, got.SenderID)
	}

	select {
	case data := <-carol.send:
		t.Fatalf("carol must not receive room traffic, got %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_BroadcastExcludesSender(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	alice := NewClient(hub, nil, uuid.New())
	bob := NewClient(hub, nil, uuid.New())
	hub.register <- alice
	hub.register <- bob
	drainPresence(t, alice.send)

	alice.Join("general")
	bob.Join("general")

	evt, err := NewEvent(EventTypeMessageNew, "general", ChatMessage{Room: "general", Content: "hi"})
	assert.NoError(t, err)
	hub.BroadcastToRoom("general", evt, &alice.userID)

	got := waitForEvent(t, bob.send)
	assert.Equal(t, EventTypeMessageNew, got.Type)

	select {
	case <-alice.send:
		t.Fatal("excluded sender must not receive the event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestClient_HandleEvent_Validation(t *testing.T) {
	hub := NewHub(nil)
	c := NewClient(hub, nil, uuid.New())

	// message.send without a room is rejected locally.
	payload, _ := json.Marshal(MessageSendPayload{Content: "hi"})
	c.handleEvent(&Event{Type: EventTypeMessageSend, Payload: payload})

	evt := waitForEvent(t, c.send)
	assert.Equal(t, EventTypeError, evt.Type)
	var errPayload ErrorPayload
	assert.NoError(t, json.Unmarshal(evt.Payload, &errPayload))
	assert.Equal(t, "INVALID_PAYLOAD", errPayload.Code)

	// Empty content is rejected too.
	payload, _ = json.Marshal(MessageSendPayload{Content: "   "})
	c.handleEvent(&Event{Type: EventTypeMessageSend, Room: "support", Payload: payload})
	evt = waitForEvent(t, c.send)
	assert.Equal(t, EventTypeError, evt.Type)

	// Unknown types get a typed error instead of a silent drop.
	c.handleEvent(&Event{Type: "message.zap"})
	evt = waitForEvent(t, c.send)
	assert.Equal(t, EventTypeError, evt.Type)
}

func TestClient_JoinLeave(t *testing.T) {
	hub := NewHub(nil)
	c := NewClient(hub, nil, uuid.New())

	c.handleEvent(&Event{Type: EventTypeRoomJoin, Room: "support"})
	assert.True(t, c.InRoom("support"))

	c.handleEvent(&Event{Type: EventTypeRoomLeave, Room: "support"})
	assert.False(t, c.InRoom("support"))

	c.handleEvent(&Event{Type: EventTypePing})
	evt := waitForEvent(t, c.send)
	assert.Equal(t, EventTypePong, evt.Type)
}
