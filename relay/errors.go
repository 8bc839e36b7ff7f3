package relay

import "errors"

// ErrUnroutableChannel indicates that no handler is registered for the event's channel.
var ErrUnroutableChannel = errors.New("no handler registered for channel")

// ErrDuplicateHandler indicates that a channel was registered twice.
var ErrDuplicateHandler = errors.New("channel already has a handler")

// ErrInvalidEntry indicates a registry entry with an unknown channel or a nil handler.
var ErrInvalidEntry = errors.New("invalid registry entry")
