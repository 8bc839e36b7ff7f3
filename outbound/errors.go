package outbound

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConnected indicates that the session is not ready to deliver messages.
var ErrNotConnected = errors.New("session is not connected")

// ErrUnsendableChannel indicates that the channel has no outbound command.
var ErrUnsendableChannel = errors.New("channel cannot be sent to")

// ErrEmptyMessage indicates that nothing remained after sanitizing the message.
var ErrEmptyMessage = errors.New("message is empty after sanitization")

// ErrNoRecipient indicates that a direct message was requested without a target name.
var ErrNoRecipient = errors.New("direct message requires a recipient")

// ErrClosed indicates that the Sender was closed before or while the message was waiting.
var ErrClosed = errors.New("sender is closed")

// ErrTransportFailure is matched by every *TransportError via errors.Is.
var ErrTransportFailure = errors.New("transport failed to deliver message")

// TransportError wraps the cause returned, or panicked, by a Transport.
type TransportError struct {
	Command string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s", ErrTransportFailure.Error(), e.Err.Error())
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrTransportFailure) match.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransportFailure
}

// IsCancellation reports whether err means the send was abandoned rather than failed:
// the caller's context ended or the Sender was closed.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, ErrClosed)
}
