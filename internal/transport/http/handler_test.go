package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sradha-maharana/video-conference-backend/internal/domain"
	"github.com/Sradha-maharana/video-conference-backend/internal/postgres"
	"github.com/Sradha-maharana/video-conference-backend/internal/presence"
	"github.com/Sradha-maharana/video-conference-backend/internal/relay"
	"github.com/Sradha-maharana/video-conference-backend/internal/security"
	"github.com/Sradha-maharana/video-conference-backend/internal/service"
	"github.com/Sradha-maharana/video-conference-backend/internal/transport/ws"
)

type memUserStore struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func (m *memUserStore) Create(_ context.Context, u *domain.User) (domain.UserID, error) {
	if _, ok := m.byEmail[u.Email]; ok {
		return 0, postgres.ErrAlreadyExists
	}
	m.nextID++
	cp := *u
	cp.ID = domain.UserID(m.nextID)
	m.byEmail[u.Email] = &cp
	return cp.ID, nil
}

func (m *memUserStore) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, postgres.ErrNotFound
}

func (m *memUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	return u, nil
}

func (m *memUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

type memRoomStore struct {
	rooms map[string]*domain.Room
}

func (m *memRoomStore) Create(_ context.Context, room *domain.Room) error {
	if _, ok := m.rooms[room.ID]; ok {
		return postgres.ErrAlreadyExists
	}
	room.CreatedAt = time.Now()
	cp := *room
	m.rooms[room.ID] = &cp
	return nil
}

func (m *memRoomStore) Get(_ context.Context, id string) (*domain.Room, error) {
	r, ok := m.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return r, nil
}

func newTestRouter() http.Handler {
	signer := security.NewJWTSigner([]byte("test-secret"), "test", "test", time.Hour, time.Minute)
	authSvc := service.NewAuthService(
		&memUserStore{byEmail: map[string]*domain.User{}},
		signer, security.BcryptConfig{Cost: 4}, nil,
	)
	roomSvc := service.NewRoomService(&memRoomStore{rooms: map[string]*domain.Room{}})

	registry := ws.NewRegistry()
	table := presence.NewTable(0, nil)
	wsServer := ws.NewServer(registry, relay.NewCoordinator(table, registry))

	h := NewHandler(authSvc, roomSvc)
	return NewRouter(h, authSvc, wsServer, []string{"http://localhost:3000"})
}

func postJSON(t *testing.T, router http.Handler, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthAndRoomFlow(t *testing.T) {
	router := newTestRouter()

	rec := postJSON(t, router, "/api/auth/register", "", RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register = %d: %s", rec.Code, rec.Body)
	}
	var auth AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &auth); err != nil {
		t.Fatalf("decode auth: %v", err)
	}
	if auth.Token == "" || auth.User.Email != "alice@example.com" {
		t.Fatalf("unexpected auth response: %+v", auth)
	}

	// duplicate email
	rec = postJSON(t, router, "/api/auth/register", "", RegisterRequest{
		Name: "Alice2", Email: "alice@example.com", Password: "secret456",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register = %d, want 400", rec.Code)
	}

	// login with wrong password
	rec = postJSON(t, router, "/api/auth/login", "", LoginRequest{
		Email: "alice@example.com", Password: "wrong",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad login = %d, want 400", rec.Code)
	}

	// rooms require a token
	rec = postJSON(t, router, "/api/rooms/", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("room create without token = %d, want 401", rec.Code)
	}

	rec = postJSON(t, router, "/api/rooms/", auth.Token, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("room create = %d: %s", rec.Code, rec.Body)
	}
	var room RoomItem
	if err := json.Unmarshal(rec.Body.Bytes(), &room); err != nil {
		t.Fatalf("decode room: %v", err)
	}
	if len(room.ID) != 8 || room.HostID != auth.User.ID {
		t.Fatalf("unexpected room: %+v", room)
	}

	// fetch it back
	req := httptest.NewRequest(http.MethodGet, "/api/rooms/"+room.ID, nil)
	req.Header.Set("Authorization", "Bearer "+auth.Token)
	get := httptest.NewRecorder()
	router.ServeHTTP(get, req)
	if get.Code != http.StatusOK {
		t.Fatalf("room get = %d: %s", get.Code, get.Body)
	}

	// unknown room
	req = httptest.NewRequest(http.MethodGet, "/api/rooms/NOPE0000", nil)
	req.Header.Set("Authorization", "Bearer "+auth.Token)
	get = httptest.NewRecorder()
	router.ServeHTTP(get, req)
	if get.Code != http.StatusNotFound {
		t.Fatalf("unknown room = %d, want 404", get.Code)
	}
}
