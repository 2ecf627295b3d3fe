package workers

import (
	"context"
	"log/slog"
	"time"

	"mentconnect/contract"
	"mentconnect/domain/event"
)

// EventFanout broadcasts domain events to in-process consumers: the
// permanent sinks (audit log, outbound publisher) and every sink subscribed
// to the event's conversation in the registry.
//
// It provides best-effort fan-out with no durability or retries; durable
// state is written by the services before the event is published. Events are
// consumed from a single channel, so subscribers observe them in the order
// the rows were committed.
type EventFanout struct {
	log         *slog.Logger
	events      chan event.DomainEvent
	registry    contract.IRegistry
	permanent   []contract.EventSink
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, events chan event.DomainEvent,
	registry contract.IRegistry, permanent []contract.EventSink,
	sinkTimeout time.Duration) *EventFanout {
	return &EventFanout{
		log:         log,
		events:      events,
		registry:    registry,
		permanent:   permanent,
		sinkTimeout: sinkTimeout,
	}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.events:
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping fanout")
			return nil
		}
	}
}

// Fanout delivers one event to every sink. A slow sink only burns its own
// timeout; it cannot stall delivery to the others indefinitely.
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	sinks := append(w.registry.SinksFor(evt.ConversationID()), w.permanent...)
	for _, sink := range sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := sink.Consume(sinkCtx, evt); err != nil {
			w.log.Warn("Sink rejected event",
				"conversation_id", evt.ConversationID(),
				"error", err)
		}
		cancel()
	}
}
