package event

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Handler consumes a dispatched event. Handlers must tolerate being invoked
// concurrently and must treat failures as their own concern; the dispatcher
// only logs them.
type Handler interface {
	Handle(ctx context.Context, env Envelope) error
}

// Dispatcher fans events out to every registered handler. Dispatch is
// best-effort and asynchronous: it never blocks the caller on delivery and a
// failing handler never propagates an error back to the request path.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) Register(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append(d.handlers, h)
}

// Dispatch delivers each event to all handlers in background goroutines.
// Call it only after the primary write transaction has committed.
func (d *Dispatcher) Dispatch(ctx context.Context, events ...Event) {
	d.mu.RLock()
	handlers := make([]Handler, len(d.handlers))
	copy(handlers, d.handlers)
	d.mu.RUnlock()

	// Handlers outlive the caller: a request-scoped context is cancelled as
	// soon as the response is written, which would kill in-flight deliveries.
	ctx = context.WithoutCancel(ctx)

	for _, e := range events {
		env := Wrap(e)
		for _, h := range handlers {
			go func(h Handler, env Envelope) {
				if err := h.Handle(ctx, env); err != nil {
					log.Error().Err(err).
						Str("event_id", env.ID).
						Str("event_type", env.Event.EventType()).
						Msg("Event handler failed")
				}
			}(h, env)
		}
	}
}

// DispatchSync delivers events on the calling goroutine, waiting for every
// handler. Used by tests and by callers that need delivery before returning.
func (d *Dispatcher) DispatchSync(ctx context.Context, events ...Event) {
	d.mu.RLock()
	handlers := make([]Handler, len(d.handlers))
	copy(handlers, d.handlers)
	d.mu.RUnlock()

	var wg sync.WaitGroup
	for _, e := range events {
		env := Wrap(e)
		for _, h := range handlers {
			wg.Add(1)
			go func(h Handler, env Envelope) {
				defer wg.Done()
				if err := h.Handle(ctx, env); err != nil {
					log.Error().Err(err).
						Str("event_id", env.ID).
						Str("event_type", env.Event.EventType()).
						Msg("Event handler failed")
				}
			}(h, env)
		}
	}
	wg.Wait()
}
