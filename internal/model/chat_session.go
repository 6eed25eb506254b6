package model

import (
	"encoding/json"
	"time"
)

type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatSession holds one assistant conversation. UserID 0 marks an anonymous
// session. The message list is replaced wholesale on every exchange and is
// stored as a JSON array in a text column for portability.
type ChatSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"` // 0 = anonymous
	Messages  string    `gorm:"type:text" json:"-"`   // JSON array of ChatMessage
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageList returns the parsed message list; empty on parse error.
func (s *ChatSession) MessageList() []ChatMessage {
	if s.Messages == "" {
		return nil
	}
	var list []ChatMessage
	_ = json.Unmarshal([]byte(s.Messages), &list)
	return list
}

// SetMessages stores the message list as JSON.
func (s *ChatSession) SetMessages(list []ChatMessage) {
	if len(list) == 0 {
		s.Messages = "[]"
		return
	}
	b, _ := json.Marshal(list)
	s.Messages = string(b)
}
