package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Sradha-maharana/video-conference-backend/internal/domain"
	"github.com/Sradha-maharana/video-conference-backend/internal/postgres"
	"github.com/Sradha-maharana/video-conference-backend/internal/security"
)

type fakeUserStore struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*domain.User{}, nextID: 1}
}

func (f *fakeUserStore) Create(_ context.Context, u *domain.User) (domain.UserID, error) {
	if _, ok := f.byEmail[u.Email]; ok {
		return 0, postgres.ErrAlreadyExists
	}
	id := domain.UserID(f.nextID)
	f.nextID++
	cp := *u
	cp.ID = id
	f.byEmail[u.Email] = &cp
	return id, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, postgres.ErrNotFound
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func newAuthService(store UserStore) *AuthService {
	signer := security.NewJWTSigner([]byte("test-secret"), "test", "test", time.Hour, time.Minute)
	return NewAuthService(store, signer, security.BcryptConfig{Cost: 4}, nil)
}

func TestRegister_IssuesToken(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	res, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.AccessToken == "" {
		t.Fatal("expected an access token")
	}
	if res.User.ID == 0 {
		t.Fatal("expected an assigned user id")
	}
	if res.User.PasswordHash == "secret123" {
		t.Fatal("password stored unhashed")
	}

	id, err := svc.UserIDFromAccessToken(res.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if id != res.User.ID {
		t.Fatalf("token subject = %d, want %d", id, res.User.ID)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	if _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "Alice2", "alice@example.com", "secret456")
	if !errors.Is(err, postgres.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)
	if _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := svc.Login(context.Background(), "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.AccessToken == "" {
		t.Fatal("expected an access token")
	}

	if _, err := svc.Login(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@example.com", "secret123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}
