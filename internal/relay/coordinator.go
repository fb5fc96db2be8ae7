// Package relay translates inbound connection events into presence table
// operations and outbound fan-out. The coordinator is stateless beyond its
// table reference; every event is handled independently, and all sends are
// best-effort with respect to delivery.
package relay

import (
	"log/slog"
	"strings"

	"github.com/Sradha-maharana/video-conference-backend/internal/domain"
	"github.com/Sradha-maharana/video-conference-backend/internal/presence"
)

// Sender delivers one event to one connection. Delivery to a closed or
// unknown connection must not fail other deliveries; errors here are
// advisory only.
type Sender interface {
	Send(connID string, evt Event) error
}

type Coordinator struct {
	table  *presence.Table
	sender Sender
}

func NewCoordinator(table *presence.Table, sender Sender) *Coordinator {
	return &Coordinator{table: table, sender: sender}
}

// Join adds the connection to the room and fans out: the joiner gets the
// prior participant snapshot then the chat history, each prior member gets
// a single user_connected notification.
func (c *Coordinator) Join(connID string, p JoinPayload) {
	if p.RoomID == "" {
		slog.Debug("relay: join without room id", "conn", connID)
		return
	}

	existing, history := c.table.Join(p.RoomID, connID, p.UserID, p.UserName)

	_ = c.sender.Send(connID, Event{Type: TypeExistingUsers, Payload: peerList(existing)})
	_ = c.sender.Send(connID, Event{Type: TypeChatHistory, Payload: messageList(history)})

	arrival := domain.Participant{ConnID: connID, UserID: p.UserID, UserName: p.UserName}
	for _, peer := range existing {
		_ = c.sender.Send(peer.ConnID, Event{Type: TypeUserConnected, Payload: arrival})
	}

	slog.Debug("relay: joined", "room", p.RoomID, "conn", connID, "user", p.UserID)
}

// Signal relays an opaque payload to the target connection only. The From
// field is stamped with the sender's handle; whatever the client claimed is
// discarded. Room co-membership of sender and target is not checked.
func (c *Coordinator) Signal(connID string, p SignalPayload) {
	if _, ok := c.table.RoomOf(connID); !ok {
		slog.Debug("relay: signal before join", "conn", connID)
		return
	}
	if p.To == "" {
		return
	}

	_ = c.sender.Send(p.To, Event{Type: TypeSignal, Payload: SignalPayload{
		Signal: p.Signal,
		From:   connID,
	}})
}

// Message appends the chat message to the room's log and broadcasts it to
// every current member, the sender included. A message for a room with no
// live entry is dropped.
func (c *Coordinator) Message(connID string, p MessagePayload) {
	if _, ok := c.table.RoomOf(connID); !ok {
		slog.Debug("relay: message before join", "conn", connID)
		return
	}
	text := strings.TrimSpace(p.Message)
	if text == "" {
		return
	}

	msg, ok := c.table.RecordMessage(p.RoomID, p.UserName, text)
	if !ok {
		slog.Debug("relay: message for inactive room", "room", p.RoomID, "conn", connID)
		return
	}

	for _, member := range c.table.Members(p.RoomID) {
		_ = c.sender.Send(member, Event{Type: TypeNewMessage, Payload: msg})
	}
}

// Disconnect removes the connection from its room and notifies the
// remaining members. Idempotent: a handle that never joined, or already
// left, is a no-op.
func (c *Coordinator) Disconnect(connID string) {
	res, ok := c.table.Leave(connID)
	if !ok {
		return
	}

	goodbye := GoodbyePayload{ConnID: connID, UserName: res.UserName}
	for _, member := range c.table.Members(res.RoomID) {
		_ = c.sender.Send(member, Event{Type: TypeUserDisconnected, Payload: goodbye})
	}

	slog.Debug("relay: left", "room", res.RoomID, "conn", connID)
}
