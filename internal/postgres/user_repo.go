package postgres

import (
	"context"
	"errors"

	"github.com/Sradha-maharana/video-conference-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	queryCreateUser = `
		INSERT INTO users (name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`
	queryGetUserByID = `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE id = $1;
	`
	queryGetUserByEmail = `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1;
	`
	queryExistsUserByEmail = `SELECT 1 FROM users WHERE email = $1;`
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (domain.UserID, error) {
	var id int64
	err := r.db.QueryRow(ctx, queryCreateUser,
		u.Name, u.Email, u.PasswordHash, u.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, mapPgError(err)
	}

	return domain.UserID(id), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return r.getOne(ctx, queryGetUserByID, int64(id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, queryGetUserByEmail, email)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var one int
	err := r.db.QueryRow(ctx, queryExistsUserByEmail, email).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, mapPgError(err)
	}

	return true, nil
}

func (r *UserRepository) getOne(ctx context.Context, sql string, arg any) (*domain.User, error) {
	var u domain.User
	var id int64
	err := r.db.QueryRow(ctx, sql, arg).Scan(
		&id, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, mapPgError(err)
	}
	u.ID = domain.UserID(id)

	return &u, nil
}
