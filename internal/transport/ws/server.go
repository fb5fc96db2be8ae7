package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Sradha-maharana/video-conference-backend/internal/relay"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Relay consumes the events read off a connection. Disconnect is invoked
// exactly once per connection, whether the peer left cleanly or the read
// loop broke.
type Relay interface {
	Join(connID string, p relay.JoinPayload)
	Signal(connID string, p relay.SignalPayload)
	Message(connID string, p relay.MessagePayload)
	Disconnect(connID string)
}

type Server struct {
	upgrader websocket.Upgrader
	registry *Registry
	relay    Relay

	pingEvery time.Duration
}

func NewServer(registry *Registry, r Relay) *Server {
	return &Server{
		registry: registry,
		relay:    r,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

// WS endpoint: GET /ws
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	c := newWsConn(conn, uuid.NewString())
	s.registry.Add(c)
	slog.Debug("ws connected", "conn", c.id, "remote", conn.RemoteAddr())

	go s.writeLoop(c)
	s.readLoop(c)

	s.registry.Remove(c.id)
	s.relay.Disconnect(c.id)

	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "conn", c.id, "err", err)
	}
}

type inbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func (s *Server) readLoop(c *wsConn) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 20)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case relay.TypeJoinRoom:
			var p relay.JoinPayload
			if json.Unmarshal(msg.Payload, &p) == nil {
				s.relay.Join(c.id, p)
			}
		case relay.TypeSignal:
			var p relay.SignalPayload
			if json.Unmarshal(msg.Payload, &p) == nil {
				s.relay.Signal(c.id, p)
			}
		case relay.TypeSendMessage:
			var p relay.MessagePayload
			if json.Unmarshal(msg.Payload, &p) == nil {
				s.relay.Message(c.id, p)
			}
		default:
			// ignore
		}
	}
}

func (s *Server) writeLoop(c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-c.closed:
			return
		}
	}
}
