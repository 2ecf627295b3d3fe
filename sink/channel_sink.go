package sink

import (
	"context"
	"fmt"

	"mentconnect/domain/event"
)

// ChannelSink exposes routed events as a channel, the shape a connection
// handler wants. A subscriber that stops draining fills the buffer and
// starts failing Consume; the fan-out worker logs and moves on, it never
// blocks the other subscribers on a dead client.
type ChannelSink struct {
	Events chan event.DomainEvent
}

func NewChannelSink(bufferSize int) *ChannelSink {
	return &ChannelSink{Events: make(chan event.DomainEvent, bufferSize)}
}

func (s *ChannelSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("subscriber too slow, event dropped: %w", ctx.Err())
	}
}
