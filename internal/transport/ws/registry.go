package ws

import (
	"sync"

	"github.com/Sradha-maharana/video-conference-backend/internal/relay"
)

// Registry maps connection handles to live websocket sessions. It is the
// relay.Sender: addressed delivery goes through here, and a send to a
// handle that is gone is a silent no-op so one dead peer never affects
// deliveries to others.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*wsConn
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*wsConn)}
}

func (r *Registry) Add(c *wsConn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[c.id] = c
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, id)
}

func (r *Registry) Send(connID string, evt relay.Event) error {
	r.mu.RLock()
	c, ok := r.conns[connID]
	r.mu.RUnlock()
	if !ok {
		return nil
	}

	return c.Send(evt)
}
