package http

import "time"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserItem struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Token     string   `json:"token"`
	ExpiresIn int64    `json:"expires_in"`
	User      UserItem `json:"user"`
}

type RoomItem struct {
	ID           string    `json:"room_id"`
	HostID       int64     `json:"host_id"`
	Participants []int64   `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
