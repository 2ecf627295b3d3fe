package event

import (
	"time"

	"github.com/google/uuid"

	"mentconnect/domain"
)

// DomainEvent is anything the fan-out worker can route to subscribers.
// Routing is keyed by the conversation the event belongs to.
type DomainEvent interface {
	ConversationID() uuid.UUID
}

// MessageCreated is emitted after a message row has been durably stored.
// Subscribers receive the exact stored row; there is no separate sanitized
// variant because moderation runs before the write.
type MessageCreated struct {
	Message domain.Message
}

func (e MessageCreated) ConversationID() uuid.UUID {
	return e.Message.ConversationID
}

// ConversationOpened is emitted when a get-or-create actually created a row.
type ConversationOpened struct {
	Conversation domain.Conversation
	OpenedBy     string
	At           time.Time
}

func (e ConversationOpened) ConversationID() uuid.UUID {
	return e.Conversation.ID
}
