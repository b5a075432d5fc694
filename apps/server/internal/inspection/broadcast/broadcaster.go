// Package broadcast delivers progress events to subscribed observers.
//
// Delivery is at-most-once and best-effort: publishing never blocks, never
// retries, and a sink that cannot accept an event simply misses it. There is
// no replay — an observer only sees events emitted while it is subscribed.
package broadcast

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/erlanggapratamaP/elang-mcp-server/pkg/api"
)

// DefaultSinkBuffer is the per-observer channel capacity used by New.
const DefaultSinkBuffer = 64

// Broadcaster owns the observer registry. A single long-lived instance is
// constructed at process start and shared by all request handlers; all
// methods are safe for concurrent use.
type Broadcaster struct {
	mu     sync.RWMutex
	sinks  map[string]chan api.ProgressEvent
	buffer int
	log    *slog.Logger
}

// New creates an empty Broadcaster with the default sink buffer.
func New(log *slog.Logger) *Broadcaster {
	return NewWithBuffer(log, DefaultSinkBuffer)
}

// NewWithBuffer creates a Broadcaster whose observer channels hold up to
// buffer undelivered events before further publishes are dropped for that
// observer.
func NewWithBuffer(log *slog.Logger, buffer int) *Broadcaster {
	if buffer < 1 {
		buffer = 1
	}
	return &Broadcaster{
		sinks:  make(map[string]chan api.ProgressEvent),
		buffer: buffer,
		log:    log,
	}
}

// Subscribe registers a new observer and returns its id and receive channel.
// The channel is closed on Unsubscribe.
func (b *Broadcaster) Subscribe() (string, <-chan api.ProgressEvent) {
	id := uuid.New().String()
	ch := make(chan api.ProgressEvent, b.buffer)

	b.mu.Lock()
	b.sinks[id] = ch
	b.mu.Unlock()

	b.log.Debug("observer subscribed", "observerId", id)
	return id, ch
}

// Unsubscribe removes an observer and closes its channel. Removing an id
// that is not registered is a no-op.
func (b *Broadcaster) Unsubscribe(id string) {
	b.mu.Lock()
	ch, ok := b.sinks[id]
	if ok {
		delete(b.sinks, id)
	}
	b.mu.Unlock()

	if ok {
		close(ch)
		b.log.Debug("observer unsubscribed", "observerId", id)
	}
}

// Publish delivers ev to every currently registered observer. A full sink
// drops the event for that observer only; other deliveries proceed and the
// publisher never sees an error.
func (b *Broadcaster) Publish(ev api.ProgressEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for id, ch := range b.sinks {
		b.send(id, ch, ev)
	}
}

// PublishTo delivers ev to a single observer, silently dropping it when the
// id is no longer registered. The read lock is held across the send so a
// concurrent Unsubscribe cannot close the channel between lookup and send.
func (b *Broadcaster) PublishTo(id string, ev api.ProgressEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ch, ok := b.sinks[id]
	if !ok {
		return
	}
	b.send(id, ch, ev)
}

// Len reports the number of registered observers.
func (b *Broadcaster) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.sinks)
}

func (b *Broadcaster) send(id string, ch chan api.ProgressEvent, ev api.ProgressEvent) {
	select {
	case ch <- ev:
	default:
		b.log.Warn("dropping event for slow observer", "observerId", id, "kind", ev.Kind)
	}
}
