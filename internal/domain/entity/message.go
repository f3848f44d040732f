package entity

import "time"

// Sender who wrote a chat message
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Valid ...
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderBot
}

// Label name shown in exported transcripts
func (s Sender) Label() string {
	if s == SenderUser {
		return "You"
	}
	return "AI Assistant"
}

// ChatMessage one line of a conversation with the assistant
type ChatMessage struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatContext a user's stored conversation
type ChatContext struct {
	UserID   int64
	Messages []ChatMessage
	LastUsed time.Time
}
