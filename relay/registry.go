package relay

import (
	"fmt"

	"github.com/oklahomer/go-sarah-chatrelay/chat"
)

// Entry binds a channel to its handler.
type Entry struct {
	Channel chat.ChannelType
	Handler Handler
}

// Registry is an immutable channel to handler table.
type Registry struct {
	handlers map[chat.ChannelType]Handler
}

// NewRegistry builds a Registry. Each channel may be registered once.
func NewRegistry(entries ...Entry) (*Registry, error) {
	handlers := make(map[chat.ChannelType]Handler, len(entries))
	for _, e := range entries {
		if !e.Channel.Valid() || e.Handler == nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidEntry, e.Channel)
		}
		if _, ok := handlers[e.Channel]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateHandler, e.Channel)
		}
		handlers[e.Channel] = e.Handler
	}
	return &Registry{handlers: handlers}, nil
}

// DefaultRegistry registers one PlayerHandler for every channel in commands that can be sent to.
func DefaultRegistry(commands chat.ChannelCommandMap, identities IdentityProvider, options ...HandlerOption) (*Registry, error) {
	handler := NewPlayerHandler(identities, options...)
	sendable := commands.Sendable()
	entries := make([]Entry, 0, len(sendable))
	for _, c := range sendable {
		entries = append(entries, Entry{Channel: c, Handler: handler})
	}
	return NewRegistry(entries...)
}

// Lookup returns the handler registered for channel.
func (r *Registry) Lookup(channel chat.ChannelType) (Handler, bool) {
	handler, ok := r.handlers[channel]
	return handler, ok
}

// Channels returns the registered channels in declaration order.
func (r *Registry) Channels() []chat.ChannelType {
	var channels []chat.ChannelType
	for _, c := range chat.AllChannels() {
		if _, ok := r.handlers[c]; ok {
			channels = append(channels, c)
		}
	}
	return channels
}
