//go:generate go run go.uber.org/mock/mockgen -source=conversation_service.go -destination=../mocks/mock_conversation_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"mentconnect/contract"
	"mentconnect/domain"
	"mentconnect/domain/event"
	apperrors "mentconnect/errors"
	"mentconnect/language"
	"mentconnect/moderation"
	"mentconnect/observability"
	"mentconnect/repositories"
	"mentconnect/sink"
)

// ConversationHandle is the resolved state of an open conversation view:
// the row, its full history in ascending creation order, and the cursor of
// the last row, usable as the live feed's watermark.
type ConversationHandle struct {
	Conversation domain.Conversation
	Messages     []domain.Message
	Cursor       *string
}

// Subscription is a live feed on one conversation. Cancel must be called
// when the view closes; an uncanceled subscription holds its registry slot
// for the process lifetime.
type Subscription struct {
	ID     uuid.UUID
	cancel func()
}

func (s *Subscription) Cancel() {
	s.cancel()
}

type IConversationService interface {
	OpenConversation(ctx context.Context, currentUserID, counterpartID, counterpartName string) (ConversationHandle, error)
	SendMessage(ctx context.Context, cmd domain.SendMessageCommand) error
	Subscribe(ctx context.Context, conversationID uuid.UUID, subscriberID string, after *string, target contract.EventSink) (*Subscription, error)
}

// ConversationService is the conversation manager: it resolves a
// (mentee, mentor) pair to the single active conversation, appends messages,
// and feeds live subscribers. All failures surface once; nothing retries.
type ConversationService struct {
	log              *slog.Logger
	conversations    repositories.IConversationRepository
	messages         repositories.IMessageRepository
	registry         contract.IRegistry
	dispatcher       contract.IDispatcher
	moderator        *moderation.Moderator
	monitor          *observability.Monitor
	maxContentLength int
}

func NewConversationService(log *slog.Logger,
	conversations repositories.IConversationRepository,
	messages repositories.IMessageRepository,
	registry contract.IRegistry,
	dispatcher contract.IDispatcher,
	moderator *moderation.Moderator,
	monitor *observability.Monitor,
	maxContentLength int) *ConversationService {
	return &ConversationService{
		log:              log,
		conversations:    conversations,
		messages:         messages,
		registry:         registry,
		dispatcher:       dispatcher,
		moderator:        moderator,
		monitor:          monitor,
		maxContentLength: maxContentLength,
	}
}

// OpenConversation resolves the single active conversation between the
// current user (mentee) and the counterpart (mentor), creating it when none
// exists. Creation and lookup share one storage transaction, so concurrent
// first opens agree on the id. The returned handle carries the full history
// ascending by creation time.
func (s *ConversationService) OpenConversation(ctx context.Context, currentUserID, counterpartID, counterpartName string) (ConversationHandle, error) {
	if currentUserID == "" || counterpartID == "" {
		return ConversationHandle{}, apperrors.ErrInvalidInput
	}

	title := fmt.Sprintf("שיחה עם %s", counterpartName)
	conversation, created, err := s.conversations.GetOrCreate(currentUserID, counterpartID, title)
	if err != nil {
		return ConversationHandle{}, fmt.Errorf("%w: %v", apperrors.ErrLoadFailed, err)
	}
	if created {
		s.log.Info("Conversation created",
			"conversation_id", conversation.ID,
			"mentee_id", currentUserID,
			"mentor_id", counterpartID)
		s.publish(ctx, event.ConversationOpened{
			Conversation: conversation,
			OpenedBy:     currentUserID,
			At:           time.Now().UTC(),
		})
	}

	messages, cursor, err := s.messages.ListMessages(conversation.ID, nil)
	if err != nil {
		return ConversationHandle{}, fmt.Errorf("%w: %v", apperrors.ErrLoadFailed, err)
	}
	return ConversationHandle{Conversation: conversation, Messages: messages, Cursor: cursor}, nil
}

// SendMessage appends one message. Whitespace-only content is a no-op.
// The row is moderated and direction-tagged before the write, then the
// conversation's advisory last_message_at is bumped, then the event goes
// out. The sender's own view gains the message only through the feed.
func (s *ConversationService) SendMessage(ctx context.Context, cmd domain.SendMessageCommand) error {
	content := strings.TrimSpace(cmd.Content)
	if content == "" {
		return nil
	}
	if s.maxContentLength > 0 && len(content) > s.maxContentLength {
		return fmt.Errorf("%w: content exceeds %d bytes", apperrors.ErrInvalidInput, s.maxContentLength)
	}

	conversation, err := s.conversations.GetByID(cmd.ConversationID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrSendFailed, err)
	}
	if cmd.SenderID != conversation.MenteeID && cmd.SenderID != conversation.MentorID {
		return apperrors.ErrNotParticipant
	}

	kind := cmd.Kind
	if kind == "" {
		kind = domain.KindText
	}
	if kind == domain.KindText {
		content = s.moderator.Mask(content)
	}

	createdAt := cmd.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	message := domain.Message{
		ID:             uuid.New(),
		ConversationID: cmd.ConversationID,
		SenderID:       cmd.SenderID,
		Content:        content,
		Kind:           kind,
		Direction:      language.Direction(content),
		CreatedAt:      createdAt,
	}

	if err = s.messages.StoreMessage(message); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrSendFailed, err)
	}
	// Separate write from the insert; last_message_at is advisory (sorting
	// conversation lists). A failure here leaves the message persisted.
	if err = s.conversations.TouchLastMessage(cmd.ConversationID, time.Now().UTC()); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrSendFailed, err)
	}

	s.publish(ctx, event.MessageCreated{Message: message})
	s.monitor.MessageSent()
	return nil
}

// Subscribe opens a live feed on the conversation for one of its
// participants. The sink is registered before the snapshot is read and live
// events are buffered in the gap; after replay the buffer is flushed with
// message-id dedup, so a message committed in the window appears exactly
// once, in order. `after` resumes strictly past a cursor from a previous
// handle.
func (s *ConversationService) Subscribe(ctx context.Context, conversationID uuid.UUID, subscriberID string, after *string, target contract.EventSink) (*Subscription, error) {
	conversation, err := s.conversations.GetByID(conversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSubscriptionFailed, err)
	}
	if subscriberID != conversation.MenteeID && subscriberID != conversation.MentorID {
		return nil, apperrors.ErrNotParticipant
	}

	subscriptionID := uuid.New()
	tail := sink.NewTailSink(target)
	s.registry.Subscribe(subscriptionID, conversationID, tail)

	snapshot, _, err := s.messages.ListMessages(conversationID, after)
	if err != nil {
		s.registry.Unsubscribe(subscriptionID, conversationID)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSubscriptionFailed, err)
	}
	for _, message := range snapshot {
		tail.MarkDelivered(message.ID)
		if err = target.Consume(ctx, event.MessageCreated{Message: message}); err != nil {
			s.registry.Unsubscribe(subscriptionID, conversationID)
			return nil, fmt.Errorf("%w: %v", apperrors.ErrSubscriptionFailed, err)
		}
	}
	if err = tail.Go(ctx); err != nil {
		s.registry.Unsubscribe(subscriptionID, conversationID)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSubscriptionFailed, err)
	}

	s.monitor.FeedOpened()
	s.log.Debug("Feed opened",
		"conversation_id", conversationID,
		"subscription_id", subscriptionID)

	return &Subscription{
		ID: subscriptionID,
		cancel: func() {
			s.registry.Unsubscribe(subscriptionID, conversationID)
			s.monitor.FeedClosed()
		},
	}, nil
}

func (s *ConversationService) publish(ctx context.Context, e event.DomainEvent) {
	if err := s.dispatcher.Publish(ctx, e); err != nil {
		s.log.Warn("Event publication failed", "error", err)
	}
}
