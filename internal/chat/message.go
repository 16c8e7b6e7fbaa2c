package chat

import "time"

// MessageStatus is the delivery marker rendered beside a message.
type MessageStatus string

const (
	StatusSent MessageStatus = "sent"
	StatusRead MessageStatus = "read"
)

// Message is one chat message as carried on the push channel. A message a
// viewer hides locally is not retracted for anyone else; the hide is
// cosmetic only.
type Message struct {
	ID        string        `json:"id,omitempty"`
	Sender    string        `json:"sender"`
	Text      string        `json:"text"`
	Timestamp time.Time     `json:"timestamp"`
	Status    MessageStatus `json:"status"`
}
