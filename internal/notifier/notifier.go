package notifier

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Message is one outbound notice to a single recipient address.
type Message struct {
	Recipient string
	Subject   string
	Body      string
}

// Notifier sends a message over one delivery channel (email, push). Delivery
// backends live outside this service; implementations here adapt to them.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// LogNotifier writes every message to the log instead of delivering it.
// Stands in for the external mail backend in development and tests.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Send(_ context.Context, msg Message) error {
	log.Info().
		Str("recipient", msg.Recipient).
		Str("subject", msg.Subject).
		Msg("Outbound notification (log sink)")
	return nil
}

type timeoutNotifier struct {
	next    Notifier
	timeout time.Duration
}

// WithTimeout bounds every Send so a slow backend cannot stall the caller
// past the configured ceiling.
func WithTimeout(next Notifier, timeout time.Duration) Notifier {
	if timeout <= 0 {
		return next
	}
	return &timeoutNotifier{next: next, timeout: timeout}
}

func (n *timeoutNotifier) Send(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- n.next.Send(ctx, msg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
