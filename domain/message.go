// Package domain contains core concepts of the relay system.
// This file defines Message values and related rules.
// Messages are immutable and validated by the domain.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message represents an immutable chat line exchanged between two paired users.
type Message struct {
	ID        uuid.UUID // unique identifier
	SenderID  string
	Content   string
	CreatedAt time.Time
}

// NewMessage builds a Message for a plain text line received from sender.
func NewMessage(sender, content string) Message {
	return Message{
		ID:        uuid.New(),
		SenderID:  sender,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

// Forwarded renders the line delivered to the partner's connection.
func (m Message) Forwarded() string {
	return m.SenderID + ": " + m.Content
}
