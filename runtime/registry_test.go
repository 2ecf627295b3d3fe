package runtime

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"mentconnect/domain/event"
)

type recordingSink struct {
	received []event.DomainEvent
}

func (s *recordingSink) Consume(_ context.Context, e event.DomainEvent) error {
	s.received = append(s.received, e)
	return nil
}

func Test_Registry_Subscribe_And_Resolve(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	conversationID := uuid.New()

	req.Nil(registry.SinksFor(conversationID))

	first := &recordingSink{}
	second := &recordingSink{}
	registry.Subscribe(uuid.New(), conversationID, first)
	registry.Subscribe(uuid.New(), conversationID, second)
	registry.Subscribe(uuid.New(), uuid.New(), &recordingSink{})

	req.Len(registry.SinksFor(conversationID), 2)
}

func Test_Registry_Unsubscribe_Cleans_Up(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	conversationID := uuid.New()
	subscriptionID := uuid.New()

	registry.Subscribe(subscriptionID, conversationID, &recordingSink{})
	req.Len(registry.SinksFor(conversationID), 1)

	registry.Unsubscribe(subscriptionID, conversationID)
	req.Nil(registry.SinksFor(conversationID))

	// Unsubscribing twice is harmless.
	registry.Unsubscribe(subscriptionID, conversationID)
}

func Test_Registry_Same_User_Two_Conversations(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	firstConversation := uuid.New()
	secondConversation := uuid.New()
	sink := &recordingSink{}

	// One user, two independent subscriptions.
	registry.Subscribe(uuid.New(), firstConversation, sink)
	registry.Subscribe(uuid.New(), secondConversation, sink)

	req.Len(registry.SinksFor(firstConversation), 1)
	req.Len(registry.SinksFor(secondConversation), 1)
}
