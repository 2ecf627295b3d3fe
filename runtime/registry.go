package runtime

import (
	"sync"

	"github.com/google/uuid"

	"mentconnect/contract"
)

type set map[uuid.UUID]struct{}

// Registry tracks live feed subscriptions. A subscription binds one sink to
// one conversation; a user holding two conversation views owns two
// independent subscriptions.
type Registry struct {
	mu          sync.RWMutex
	sinks       map[uuid.UUID]contract.EventSink // subscription id -> sink
	subscribers map[uuid.UUID]set                // conversation id -> subscription ids
}

func NewRegistry() *Registry {
	return &Registry{
		sinks:       make(map[uuid.UUID]contract.EventSink),
		subscribers: make(map[uuid.UUID]set),
	}
}

// SinksFor resolves the active sinks subscribed to a conversation.
// Returns nil when the conversation has no subscribers.
func (r *Registry) SinksFor(conversationID uuid.UUID) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.subscribers[conversationID]
	if !ok {
		return nil
	}
	var active []contract.EventSink
	for subscriptionID := range members {
		if sink, exists := r.sinks[subscriptionID]; exists {
			active = append(active, sink)
		}
	}
	return active
}

// Subscribe registers a sink under its subscription id and attaches it to
// the conversation. Missing conversation entries are initialized on the fly.
func (r *Registry) Subscribe(subscriptionID, conversationID uuid.UUID, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sinks[subscriptionID] = sink

	if _, ok := r.subscribers[conversationID]; !ok {
		r.subscribers[conversationID] = make(set)
	}
	r.subscribers[conversationID][subscriptionID] = struct{}{}
}

// Unsubscribe releases the subscription. Empty conversation sets are removed
// so long-running processes don't accumulate dead entries.
func (r *Registry) Unsubscribe(subscriptionID, conversationID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sinks, subscriptionID)

	if members, ok := r.subscribers[conversationID]; ok {
		delete(members, subscriptionID)
		if len(members) == 0 {
			delete(r.subscribers, conversationID)
		}
	}
}
