// Package presence holds the live, in-memory room state: which connections
// are currently joined to which room, and the chat exchanged while the room
// has been active. Rooms appear on first join and vanish with their message
// log when the last participant leaves; nothing here is persisted.
package presence

import (
	"sync"
	"time"

	"github.com/Sradha-maharana/video-conference-backend/internal/domain"
)

const defaultMaxLog = 500

type LeaveResult struct {
	RoomID   string
	UserName string
}

type room struct {
	participants []domain.Participant // join order
	log          []domain.ChatMessage // append order, capped at maxLog
}

// Table maps room ids to their live participants and chat log. A single
// mutex serializes all mutations; snapshots are copied out under the lock
// so callers can fan out without holding it. byConn is a reverse index
// conn id -> room id kept in lockstep with joins and leaves, making Leave
// O(1) instead of a scan over every room.
type Table struct {
	mu     sync.Mutex
	rooms  map[string]*room
	byConn map[string]string

	maxLog int
	now    func() time.Time
}

func NewTable(maxLog int, now func() time.Time) *Table {
	if maxLog <= 0 {
		maxLog = defaultMaxLog
	}
	if now == nil {
		now = time.Now
	}

	return &Table{
		rooms:  make(map[string]*room),
		byConn: make(map[string]string),
		maxLog: maxLog,
		now:    now,
	}
}

// Join registers connID in roomID, creating the room entry if absent, and
// returns snapshots of the participants that were already there and of the
// room's chat log. A connID already present anywhere in the table (transport
// misuse) is removed first, so the uniqueness invariant holds: last join wins.
func (t *Table) Join(roomID, connID, userID, userName string) ([]domain.Participant, []domain.ChatMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, dup := t.byConn[connID]; dup {
		t.removeLocked(connID)
	}

	r, ok := t.rooms[roomID]
	if !ok {
		r = &room{}
		t.rooms[roomID] = r
	}

	existing := make([]domain.Participant, len(r.participants))
	copy(existing, r.participants)
	history := make([]domain.ChatMessage, len(r.log))
	copy(history, r.log)

	r.participants = append(r.participants, domain.Participant{
		ConnID:   connID,
		UserID:   userID,
		UserName: userName,
	})
	t.byConn[connID] = roomID

	return existing, history
}

// RecordMessage appends a message stamped with the current time and reports
// whether the room was active. A message racing the room's teardown is
// dropped, not an error.
func (t *Table) RecordMessage(roomID, userName, text string) (domain.ChatMessage, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.rooms[roomID]
	if !ok {
		return domain.ChatMessage{}, false
	}

	msg := domain.ChatMessage{
		UserName:  userName,
		Text:      text,
		Timestamp: t.now(),
	}
	r.log = append(r.log, msg)
	if len(r.log) > t.maxLog {
		r.log = r.log[len(r.log)-t.maxLog:]
	}

	return msg, true
}

// Leave removes connID from whatever room it is in and deletes the room
// entry if it becomes empty. Safe to call for a handle that was never
// joined or already left.
func (t *Table) Leave(connID string) (LeaveResult, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.removeLocked(connID)
}

func (t *Table) removeLocked(connID string) (LeaveResult, bool) {
	roomID, ok := t.byConn[connID]
	if !ok {
		return LeaveResult{}, false
	}
	delete(t.byConn, connID)

	r := t.rooms[roomID]
	res := LeaveResult{RoomID: roomID}
	for i, p := range r.participants {
		if p.ConnID == connID {
			res.UserName = p.UserName
			r.participants = append(r.participants[:i], r.participants[i+1:]...)
			break
		}
	}

	if len(r.participants) == 0 {
		delete(t.rooms, roomID)
	}

	return res, true
}

// Members returns a snapshot of the conn ids currently in roomID.
func (t *Table) Members(roomID string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.rooms[roomID]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(r.participants))
	for _, p := range r.participants {
		ids = append(ids, p.ConnID)
	}

	return ids
}

// RoomOf reports which room a connection is joined to, if any.
func (t *Table) RoomOf(connID string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	roomID, ok := t.byConn[connID]
	return roomID, ok
}
