// Package domain contains core concepts of the mentoring platform.
// This file defines Message rows and related rules.
// Messages are immutable once created and belong to exactly one conversation.
package domain

import (
	"time"

	"github.com/google/uuid"
)

type MessageKind string

const (
	KindText  MessageKind = "text"
	KindImage MessageKind = "image"
	KindFile  MessageKind = "file"
)

// Direction is the display direction of a message, derived from its content.
// Hebrew content renders right-to-left.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// Message represents an immutable chat entry.
type Message struct {
	ID             uuid.UUID   `json:"id"`
	ConversationID uuid.UUID   `json:"conversation_id"`
	SenderID       string      `json:"sender_id"`
	Content        string      `json:"content"`
	Kind           MessageKind `json:"message_type"`
	Direction      Direction   `json:"direction"`
	IsRead         bool        `json:"is_read"`
	CreatedAt      time.Time   `json:"created_at"`
}
