// Package push implements the client side of the platform's event channel:
// transports deliver raw named events, a dispatcher validates and decodes them
// once, and subscribed handlers apply them as synchronous state transitions.
package push

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/quibbleapp/quibble-go/internal/events"
	"github.com/quibbleapp/quibble-go/internal/observability"
)

// Handler receives the decoded payload for one event. Handlers must be
// synchronous; any async follow-up belongs in a separate goroutine.
type Handler func(payload any)

// Dispatcher fans decoded events out to subscribed handlers. Subscription is
// keyed by (event, owner) so re-subscribing the same owner replaces rather
// than duplicates, and one owner can drop all of its handlers at once.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]map[string]Handler
	logger   zerolog.Logger
}

// NewDispatcher constructs an empty dispatcher.
func NewDispatcher(logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]map[string]Handler),
		logger:   logger.With().Str("component", "push_dispatcher").Logger(),
	}
}

// Subscribe registers a handler for one event under an owner key. Subscribing
// the same (event, owner) pair twice replaces the previous handler, which
// makes a page's Subscribe call idempotent. The returned func removes exactly
// this registration.
func (d *Dispatcher) Subscribe(event, owner string, handler Handler) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.handlers[event]; !ok {
		d.handlers[event] = make(map[string]Handler)
	}
	d.handlers[event][owner] = handler

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if owners, ok := d.handlers[event]; ok {
			delete(owners, owner)
			if len(owners) == 0 {
				delete(d.handlers, event)
			}
		}
	}
}

// UnsubscribeAll removes every handler registered under the owner key.
func (d *Dispatcher) UnsubscribeAll(owner string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for event, owners := range d.handlers {
		delete(owners, owner)
		if len(owners) == 0 {
			delete(d.handlers, event)
		}
	}
}

// Dispatch validates, decodes, and delivers one raw event. Malformed payloads
// are dropped here so handlers only ever see well-formed typed values; a
// panicking handler is isolated and does not affect the others.
func (d *Dispatcher) Dispatch(event string, payload []byte) {
	decoded, err := events.Decode(event, payload)
	if err != nil {
		reason := "malformed"
		if errors.Is(err, events.ErrUnknownEvent) {
			reason = "unknown_event"
		}
		observability.EventsDropped().WithLabelValues(reason).Inc()
		d.logger.Warn().Err(err).Str("event", event).Msg("dropping push event")
		return
	}

	d.mu.RLock()
	owners := d.handlers[event]
	handlers := make([]Handler, 0, len(owners))
	for _, handler := range owners {
		handlers = append(handlers, handler)
	}
	d.mu.RUnlock()

	for _, handler := range handlers {
		d.invoke(event, handler, decoded)
	}

	observability.EventsApplied().WithLabelValues(event).Inc()
}

func (d *Dispatcher) invoke(event string, handler Handler, payload any) {
	defer func() {
		if recovered := recover(); recovered != nil {
			observability.EventsDropped().WithLabelValues("handler_panic").Inc()
			d.logger.Error().Str("event", event).Interface("panic", recovered).Msg("push handler panicked")
		}
	}()
	handler(payload)
}
