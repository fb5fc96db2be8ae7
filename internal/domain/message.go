package domain

import "time"

type ChatMessage struct {
	UserName  string    `json:"user_name"`
	Text      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
