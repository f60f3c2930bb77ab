package events

import (
	"slices"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// Listener handles a dispatched event.
type Listener func(Event) error

// Subscription identifies one listener registration.
type Subscription struct {
	bus  *Bus
	id   uint64
	kind Kind
}

// Kind returns the event kind the subscription listens to.
func (s Subscription) Kind() Kind {
	return s.kind
}

// Cancel removes the listener from its bus. Cancelling twice is a no-op.
func (s Subscription) Cancel() {
	if s.bus != nil {
		s.bus.Unsubscribe(s)
	}
}

type subscriber struct {
	id       uint64
	listener Listener
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the logger listener failures are reported to.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Bus) {
		b.logger = logger
	}
}

// WithErrorHandler receives every listener failure after it has been logged.
func WithErrorHandler(fn func(*ListenerError)) Option {
	return func(b *Bus) {
		b.onError = fn
	}
}

// Bus is a synchronous publish/subscribe channel. Listeners for a kind run
// in subscription order on the dispatching goroutine.
//
// The bus is not safe for concurrent use; it belongs to the frame thread.
type Bus struct {
	listeners map[Kind][]subscriber
	index     *intmap.Map[uint64, Kind]
	nextId    uint64
	logger    *zap.Logger
	onError   func(*ListenerError)
}

// NewBus creates an empty bus.
func NewBus(opts ...Option) *Bus {
	b := &Bus{
		listeners: make(map[Kind][]subscriber),
		index:     intmap.New[uint64, Kind](16),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers listener for kind. A listener function may be
// subscribed to several kinds.
func (b *Bus) Subscribe(kind Kind, listener Listener) Subscription {
	b.nextId++
	id := b.nextId

	// copy on write so an in-flight dispatch keeps its snapshot
	subs := b.listeners[kind]
	next := make([]subscriber, len(subs), len(subs)+1)
	copy(next, subs)
	b.listeners[kind] = append(next, subscriber{id: id, listener: listener})
	b.index.Put(id, kind)

	return Subscription{bus: b, id: id, kind: kind}
}

// On subscribes a listener typed to a concrete event.
func On[T Event](b *Bus, fn func(T) error) Subscription {
	var zero T
	return b.Subscribe(zero.Kind(), func(e Event) error {
		typed, ok := e.(T)
		if !ok {
			return nil
		}
		return fn(typed)
	})
}

// Unsubscribe removes a listener. Unknown or cancelled subscriptions, and
// subscriptions made on another bus, are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	if sub.bus != b {
		return
	}
	kind, ok := b.index.Get(sub.id)
	if !ok {
		return
	}
	b.index.Del(sub.id)

	b.listeners[kind] = slices.DeleteFunc(slices.Clone(b.listeners[kind]), func(s subscriber) bool {
		return s.id == sub.id
	})
}

// Len returns the number of listeners subscribed to kind.
func (b *Bus) Len(kind Kind) int {
	return len(b.listeners[kind])
}

// Dispatch invokes every listener subscribed to the event's kind.
// Subscription changes made by listeners apply to later dispatches only.
// Listener failures are isolated: they are logged, passed to the error
// handler, and the remaining listeners still run.
func (b *Bus) Dispatch(event Event) {
	kind := event.Kind()
	for i, sub := range b.listeners[kind] {
		if err := b.invoke(sub.listener, event); err != nil {
			b.fail(&ListenerError{Kind: kind, Index: i, Cause: err})
		}
	}
}

func (b *Bus) invoke(listener Listener, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return listener(event)
}

func (b *Bus) fail(err *ListenerError) {
	b.logger.Error("event listener failed",
		zap.Stringer("kind", err.Kind),
		zap.Int("listener", err.Index),
		zap.Error(err.Cause))
	if b.onError != nil {
		b.onError(err)
	}
}
