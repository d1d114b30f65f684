package domain

import "time"

// Message is one chat line. Immutable once appended; append order is the
// display order.
type Message struct {
	Sender string    `json:"playerName"`
	Text   string    `json:"message"`
	SentAt time.Time `json:"timestamp"`
}
