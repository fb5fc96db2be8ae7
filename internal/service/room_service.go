package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sradha-maharana/video-conference-backend/internal/domain"
	"github.com/Sradha-maharana/video-conference-backend/internal/postgres"
	"github.com/Sradha-maharana/video-conference-backend/internal/security"
)

const roomCodeLength = 8

type RoomStore interface {
	Create(ctx context.Context, room *domain.Room) error
	Get(ctx context.Context, id string) (*domain.Room, error)
}

type RoomService struct {
	rooms RoomStore
}

func NewRoomService(rooms RoomStore) *RoomService {
	return &RoomService{rooms: rooms}
}

// CreateRoom persists a room under a fresh 8-char code with the host as the
// first participant. Retries on the (unlikely) code collision.
func (s *RoomService) CreateRoom(ctx context.Context, hostID int64) (*domain.Room, error) {
	for attempt := 0; attempt < 3; attempt++ {
		code, err := security.RandomRoomCode(roomCodeLength)
		if err != nil {
			return nil, fmt.Errorf("room code: %w", err)
		}

		room := &domain.Room{
			ID:           code,
			HostID:       hostID,
			Participants: []int64{hostID},
		}
		if err := s.rooms.Create(ctx, room); err != nil {
			if errors.Is(err, postgres.ErrAlreadyExists) {
				continue
			}
			return nil, fmt.Errorf("roomRepo.Create: %w", err)
		}
		return room, nil
	}

	return nil, errors.New("room code collision")
}

// GetRoom returns the durable room record by its code.
func (s *RoomService) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	room, err := s.rooms.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return room, nil
}
