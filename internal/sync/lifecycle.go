// Package sync implements the per-page synchronizers: each owns a local
// snapshot of the entities one page renders, fills it with an initial fetch,
// and keeps it convergent by applying push events through fixed per-event
// merge rules.
package sync

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quibbleapp/quibble-go/internal/observability"
	"github.com/quibbleapp/quibble-go/internal/push"
)

type state int

const (
	stateUninitialized state = iota
	stateFetching
	stateReady
	stateTornDown
)

// lifecycle is the shared skeleton of every synchronizer: the state machine,
// the idempotent subscription bookkeeping, and the liveness check that stops
// late fetches and events from mutating a torn-down instance.
type lifecycle struct {
	mu      sync.Mutex
	state   state
	owner   string
	channel push.Channel
	logger  zerolog.Logger

	subscribed bool
	cancels    []func()
}

func newLifecycle(channel push.Channel, logger zerolog.Logger, component string) lifecycle {
	observability.SyncInstances().Inc()
	return lifecycle{
		state:   stateUninitialized,
		owner:   uuid.NewString(),
		channel: channel,
		logger:  logger.With().Str("component", component).Logger(),
	}
}

// beginFetchLocked moves to fetching. Callers hold mu.
func (l *lifecycle) beginFetchLocked() bool {
	if l.state == stateTornDown {
		return false
	}
	l.state = stateFetching
	return true
}

// aliveLocked reports whether state mutations are still allowed. Callers hold mu.
func (l *lifecycle) aliveLocked() bool {
	return l.state != stateTornDown
}

// subscribe registers the given event handlers once. Calling it again is a
// no-op, so a page re-mounting its subscription cannot double-apply events.
func (l *lifecycle) subscribe(bindings map[string]push.Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.subscribed || l.state == stateTornDown {
		return
	}
	for event, handler := range bindings {
		l.cancels = append(l.cancels, l.channel.Subscribe(event, l.owner, handler))
	}
	l.subscribed = true
}

// Teardown deregisters every handler and makes the terminal state transition.
// Handlers and in-flight fetches observe the state under the same mutex, so
// nothing lands in the snapshot afterwards.
func (l *lifecycle) Teardown() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == stateTornDown {
		return
	}
	l.state = stateTornDown

	for _, cancel := range l.cancels {
		cancel()
	}
	l.cancels = nil
	l.subscribed = false
	l.channel.UnsubscribeAll(l.owner)

	observability.SyncInstances().Dec()
	l.logger.Debug().Msg("synchronizer torn down")
}

// Ready reports whether the initial fetch has completed (successfully or not).
func (l *lifecycle) Ready() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state == stateReady
}
