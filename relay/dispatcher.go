package relay

import (
	"context"
	"fmt"

	"github.com/oklahomer/go-sarah-chatrelay/chat"
	"github.com/oklahomer/go-sarah-chatrelay/outbound"
)

// DispatcherOption defines a function signature for Dispatcher's functional options.
type DispatcherOption func(dispatcher *Dispatcher)

// WithDispatcherLogger replaces the go-kasumi backed logger.
func WithDispatcherLogger(l outbound.Logger) DispatcherOption {
	return func(dispatcher *Dispatcher) {
		dispatcher.log = l
	}
}

// Dispatcher routes each event to the handler registered for its channel.
// It holds no mutable state and is safe for concurrent use.
type Dispatcher struct {
	registry    *Registry
	destination Destination
	log         outbound.Logger
}

// NewDispatcher creates a Dispatcher over registry delivering to destination.
func NewDispatcher(registry *Registry, destination Destination, options ...DispatcherOption) *Dispatcher {
	dispatcher := &Dispatcher{
		registry:    registry,
		destination: destination,
		log:         outbound.DefaultLogger(),
	}
	for _, opt := range options {
		opt(dispatcher)
	}
	return dispatcher
}

// Route hands event to its handler and returns the handler's outcome.
// Events on a channel without a handler fail with ErrUnroutableChannel.
func (d *Dispatcher) Route(ctx context.Context, event chat.ChatEvent) (Outcome, error) {
	handler, ok := d.registry.Lookup(event.Channel)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUnroutableChannel, event.Channel)
		d.log.Warnf("Dropping event: %+v", err)
		return OutcomeFailed, err
	}

	outcome, err := handler.Handle(ctx, event, d.destination)
	if outcome == OutcomeUnattributed {
		d.log.Debugf("Dropping %s message from unknown sender %q", event.Channel, event.Sender.Text())
	}
	return outcome, err
}
