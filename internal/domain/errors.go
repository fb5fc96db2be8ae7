package domain

import "errors"

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmptyPasswordHash  = errors.New("empty password hash")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired or not valid yet")
	ErrInvalidSubject     = errors.New("invalid subject")
)
