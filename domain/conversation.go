package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a persistent thread between exactly one mentee and one mentor.
// At most one conversation with IsActive=true exists per (mentee, mentor) pair;
// the repository enforces this inside a single storage transaction.
type Conversation struct {
	ID            uuid.UUID `json:"id"`
	MenteeID      string    `json:"user_id"`
	MentorID      string    `json:"mentor_id"`
	Title         string    `json:"title"`
	IsActive      bool      `json:"is_active"`
	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
