package sink

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"mentconnect/domain/event"
	"mentconnect/repositories"
)

// AuditSink is a permanent sink persisting a security-audit row for every
// conversation event. Audit writes are best-effort: a failure is logged,
// never propagated into the feed path.
type AuditSink struct {
	audit repositories.IAuditRepository
	log   *slog.Logger
}

func NewAuditSink(audit repositories.IAuditRepository, log *slog.Logger) AuditSink {
	return AuditSink{audit: audit, log: log}
}

func (s AuditSink) Consume(_ context.Context, e event.DomainEvent) error {
	entry := repositories.AuditEntry{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
	}
	switch evt := e.(type) {
	case event.MessageCreated:
		entry.EventType = "message_sent"
		entry.UserID = evt.Message.SenderID
		entry.Details = map[string]string{
			"conversation_id": evt.Message.ConversationID.String(),
			"message_id":      evt.Message.ID.String(),
			"content_length":  strconv.Itoa(len(evt.Message.Content)),
		}
	case event.ConversationOpened:
		entry.EventType = "conversation_opened"
		entry.UserID = evt.OpenedBy
		entry.Details = map[string]string{
			"conversation_id": evt.Conversation.ID.String(),
		}
	default:
		return nil
	}

	if err := s.audit.Append(entry); err != nil {
		s.log.Error("Audit append failed", "event_type", entry.EventType, "error", err)
	}
	return nil
}
