package domain

import "time"

// Room is the durable room record. It outlives the live presence state:
// the relay never consults it, it only seeds room codes for clients.
type Room struct {
	ID           string    `db:"id"`
	HostID       int64     `db:"host_id"`
	Participants []int64   `db:"participants"`
	CreatedAt    time.Time `db:"created_at"`
}
