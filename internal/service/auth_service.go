package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Sradha-maharana/video-conference-backend/internal/domain"
	"github.com/Sradha-maharana/video-conference-backend/internal/postgres"
	"github.com/Sradha-maharana/video-conference-backend/internal/security"
)

type UserStore interface {
	Create(ctx context.Context, u *domain.User) (domain.UserID, error)
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type AuthResult struct {
	User        *domain.User
	AccessToken string
}

type AuthService struct {
	users      UserStore
	jwt        *security.JWTSigner
	passPolicy security.BcryptConfig
	now        func() time.Time
}

func NewAuthService(users UserStore, jwt *security.JWTSigner, passPolicy security.BcryptConfig, now func() time.Time) *AuthService {
	if now == nil {
		now = time.Now
	}

	return &AuthService{
		users:      users,
		jwt:        jwt,
		passPolicy: passPolicy,
		now:        now,
	}
}

// Register creates a user with a unique email and issues an access token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		slog.Error("auth.register.existsByEmail failed", slog.Any("err", err))
		return nil, err
	}
	if exists {
		return nil, postgres.ErrAlreadyExists
	}

	hash, err := security.HashPassword(password, &s.passPolicy)
	if err != nil {
		return nil, err
	}

	u, err := domain.NewUser(name, email, hash, s.now())
	if err != nil {
		return nil, err
	}

	id, err := s.users.Create(ctx, u)
	if err != nil {
		slog.Error("auth.register.create failed", slog.Any("err", err))
		return nil, err
	}
	u.ID = id

	access, err := s.jwt.SignAccessToken(u.ID, s.now())
	if err != nil {
		slog.Error("auth.register.signToken failed", slog.Any("err", err))
		return nil, err
	}

	return &AuthResult{User: u, AccessToken: access}, nil
}

// Login authenticates email+password and issues an access token. A missing
// user and a wrong password both surface as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		slog.Error("auth.login.getByEmail failed", slog.Any("err", err))
		return nil, err
	}

	if err := security.ComparePassword(u.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	access, err := s.jwt.SignAccessToken(u.ID, s.now())
	if err != nil {
		slog.Error("auth.login.signToken failed", slog.Any("err", err))
		return nil, err
	}

	return &AuthResult{User: u, AccessToken: access}, nil
}

func (s *AuthService) AccessTTL() time.Duration { return s.jwt.TTL() }

// UserIDFromAccessToken parses and validates an access JWT.
func (s *AuthService) UserIDFromAccessToken(token string) (domain.UserID, error) {
	claims, err := s.jwt.ParseAndValidate(token)
	if err != nil {
		return 0, err
	}

	return security.SubjectAsUserID(claims)
}
