// Package runtime handles event propagation and supervision.
// It routes committed rows to live subscribers without containing business
// logic or domain rules.
package runtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"mentconnect/contract"
	"mentconnect/domain/event"
	"mentconnect/runtime/workers"
)

// Dispatcher owns the domain-event channel and the fan-out worker feeding
// subscribers. Services publish events only after their rows are durable,
// so a subscriber observing an event can trust the row exists.
type Dispatcher struct {
	mu             sync.Mutex
	log            *slog.Logger
	supervisor     contract.ISupervisor
	registry       contract.IRegistry
	events         chan event.DomainEvent
	permanentSinks []contract.EventSink
	sinkTimeout    time.Duration
	started        bool
}

func NewDispatcher(log *slog.Logger, supervisor *workers.Supervisor,
	registry *Registry, bufferSize int, sinkTimeout time.Duration) *Dispatcher {
	return &Dispatcher{
		log:         log,
		supervisor:  supervisor,
		registry:    registry,
		events:      make(chan event.DomainEvent, bufferSize),
		sinkTimeout: sinkTimeout,
	}
}

// Add registers permanent sinks receiving every event regardless of
// conversation. Must be called before Start.
func (d *Dispatcher) Add(sinks ...contract.EventSink) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.permanentSinks = append(d.permanentSinks, sinks...)
}

// Publish enqueues an event for fan-out. It blocks while the buffer is full
// rather than dropping: a lost event would desynchronize every live view of
// the conversation until reload.
func (d *Dispatcher) Publish(ctx context.Context, e event.DomainEvent) error {
	select {
	case d.events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start registers the fan-out worker and launches the supervisor.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		return nil
	}
	d.started = true
	fanout := workers.NewEventFanout(d.log, d.events, d.registry, d.permanentSinks, d.sinkTimeout)
	d.supervisor.Add(fanout)
	d.mu.Unlock()

	d.log.Info("Starting dispatcher and all supervised workers")
	go d.supervisor.Run(ctx)
	return nil
}

// Stop initiates a graceful shutdown of the supervised workers.
func (d *Dispatcher) Stop() {
	d.log.Info("Requesting dispatcher shutdown")
	d.supervisor.Stop()
}
