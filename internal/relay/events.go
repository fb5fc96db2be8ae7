package relay

import (
	"encoding/json"

	"github.com/Sradha-maharana/video-conference-backend/internal/domain"
)

// Event types carried over the websocket, both directions.
const (
	TypeJoinRoom         = "join_room"         // in: join a room
	TypeExistingUsers    = "existing_users"    // out: snapshot for the joiner
	TypeChatHistory      = "chat_history"      // out: chat log for the joiner
	TypeUserConnected    = "user_connected"    // out: new arrival, to prior members
	TypeSignal           = "signal"            // both: point-to-point negotiation relay
	TypeSendMessage      = "send_message"      // in: chat message
	TypeNewMessage       = "new_message"       // out: chat message, to the whole room
	TypeUserDisconnected = "user_disconnected" // out: departure, to remaining members
)

type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type JoinPayload struct {
	RoomID   string `json:"room_id"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

// SignalPayload carries an opaque negotiation blob. Inbound, To addresses a
// connection handle; outbound, From identifies the sender's handle. The
// relay never inspects Signal.
type SignalPayload struct {
	To     string          `json:"to,omitempty"`
	Signal json.RawMessage `json:"signal"`
	From   string          `json:"from,omitempty"`
}

type MessagePayload struct {
	RoomID   string `json:"room_id"`
	Message  string `json:"message"`
	UserName string `json:"user_name"`
}

type GoodbyePayload struct {
	ConnID   string `json:"conn_id"`
	UserName string `json:"user_name"`
}

func peerList(ps []domain.Participant) []domain.Participant {
	if ps == nil {
		return []domain.Participant{}
	}
	return ps
}

func messageList(ms []domain.ChatMessage) []domain.ChatMessage {
	if ms == nil {
		return []domain.ChatMessage{}
	}
	return ms
}
