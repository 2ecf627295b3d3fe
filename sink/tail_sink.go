// Package sink contains EventSink implementations bridging the fan-out
// worker to feed consumers and side effects.
package sink

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"mentconnect/contract"
	"mentconnect/domain/event"
)

// TailSink solves the snapshot+tail handoff of a live feed. It is registered
// BEFORE the history snapshot is read, buffering live events in the gap.
// Once the snapshot has been delivered, Go flushes the buffer and switches
// to passthrough. Message events whose id was already delivered — via the
// snapshot or earlier in the tail — are dropped, so a message landing in the
// race window appears exactly once.
type TailSink struct {
	mu       sync.Mutex
	target   contract.EventSink
	buffered []event.DomainEvent
	live     bool
	seen     map[uuid.UUID]struct{}
}

func NewTailSink(target contract.EventSink) *TailSink {
	return &TailSink{target: target, seen: make(map[uuid.UUID]struct{})}
}

// MarkDelivered records a message id delivered by the snapshot.
func (t *TailSink) MarkDelivered(id uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seen[id] = struct{}{}
}

func (t *TailSink) Consume(ctx context.Context, e event.DomainEvent) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.live {
		t.buffered = append(t.buffered, e)
		return nil
	}
	return t.deliverLocked(ctx, e)
}

// Go flushes events buffered during the snapshot read and switches to
// passthrough. Ordering is preserved: buffered events precede anything the
// fan-out worker routes afterwards because Consume serializes on the mutex.
func (t *TailSink) Go(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.buffered {
		if err := t.deliverLocked(ctx, e); err != nil {
			return err
		}
	}
	t.buffered = nil
	t.live = true
	return nil
}

func (t *TailSink) deliverLocked(ctx context.Context, e event.DomainEvent) error {
	if created, ok := e.(event.MessageCreated); ok {
		if _, dup := t.seen[created.Message.ID]; dup {
			return nil
		}
		t.seen[created.Message.ID] = struct{}{}
	}
	return t.target.Consume(ctx, e)
}
