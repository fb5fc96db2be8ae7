package postgres

import (
	"context"
	"errors"

	"github.com/Sradha-maharana/video-conference-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	queryCreateRoom = `
		INSERT INTO rooms (id, host_id, participants)
		VALUES ($1, $2, $3)
		RETURNING created_at;
	`
	queryGetRoom = `
		SELECT id, host_id, participants, created_at
		FROM rooms
		WHERE id = $1;
	`
)

type RoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	err := r.db.QueryRow(ctx, queryCreateRoom,
		room.ID, room.HostID, room.Participants,
	).Scan(&room.CreatedAt)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *RoomRepository) Get(ctx context.Context, id string) (*domain.Room, error) {
	var rm domain.Room
	err := r.db.QueryRow(ctx, queryGetRoom, id).
		Scan(&rm.ID, &rm.HostID, &rm.Participants, &rm.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, mapPgError(err)
	}
	return &rm, nil
}
