//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"github.com/google/uuid"

	"mentconnect/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself.
// The supervisor recovers panics and restarts it.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// Used for logging and supervision, avoiding manual naming in the interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink receives routed domain events. Consume must not block longer
// than the dispatcher's sink timeout.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IRegistry tracks live feed subscriptions per conversation. Keys are
// subscription ids, not user ids: one user may hold feeds on several
// conversations at once.
type IRegistry interface {
	SinksFor(conversationID uuid.UUID) []EventSink
	Subscribe(subscriptionID uuid.UUID, conversationID uuid.UUID, sink EventSink)
	Unsubscribe(subscriptionID uuid.UUID, conversationID uuid.UUID)
}

// IDispatcher accepts events after their rows are durable and fans them out
// to permanent sinks plus the registry's per-conversation subscribers.
type IDispatcher interface {
	Publish(ctx context.Context, e event.DomainEvent) error
	Start(ctx context.Context) error
	Stop()
}
