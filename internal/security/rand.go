package security

import (
	"crypto/rand"
	"io"
)

const roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomBytes returns n cryptographically secure bytes.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := io.ReadFull(rand.Reader, b)
	return b, err
}

// RandomRoomCode returns an n-char uppercase alphanumeric room code.
func RandomRoomCode(n int) (string, error) {
	b, err := RandomBytes(n)
	if err != nil {
		return "", err
	}
	for i := range b {
		b[i] = roomCodeAlphabet[int(b[i])%len(roomCodeAlphabet)]
	}

	return string(b), nil
}
