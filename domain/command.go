package domain

import (
	"time"

	"github.com/google/uuid"
)

type Command interface {
	Conversation() uuid.UUID
}

type OpenConversationCommand struct {
	CurrentUserID   string
	CounterpartID   string
	CounterpartName string
}

type SendMessageCommand struct {
	ConversationID uuid.UUID
	SenderID       string
	Content        string
	Kind           MessageKind
	CreatedAt      time.Time
}

func (c SendMessageCommand) Conversation() uuid.UUID {
	return c.ConversationID
}
