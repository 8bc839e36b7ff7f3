package relay

import (
	"context"
	"strings"

	"github.com/oklahomer/go-sarah-chatrelay/chat"
)

// Outcome describes what happened to a routed event.
type Outcome int

const (
	// OutcomeFailed means the event could not be routed or forwarding returned an error.
	OutcomeFailed Outcome = iota
	// OutcomeForwarded means the message was handed to the Destination and accepted.
	OutcomeForwarded
	// OutcomeUnattributed means the sender could not be identified and the event was dropped on purpose.
	OutcomeUnattributed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeForwarded:
		return "forwarded"
	case OutcomeUnattributed:
		return "unattributed"
	default:
		return "failed"
	}
}

// Destination accepts an attributed message.
type Destination interface {
	Send(ctx context.Context, name string, origin string, body chat.RichText, channel chat.ChannelType) error
}

// IdentityProvider exposes the identity of the locally controlled player.
type IdentityProvider interface {
	LocalPlayer() (chat.Identity, bool)
}

// StaticIdentity is an IdentityProvider with a fixed identity.
type StaticIdentity chat.Identity

// LocalPlayer returns the identity. It reports false when no name is set.
func (s StaticIdentity) LocalPlayer() (chat.Identity, bool) {
	identity := chat.Identity(s)
	return identity, !identity.IsZero()
}

// Handler processes one chat event.
type Handler interface {
	Handle(ctx context.Context, event chat.ChatEvent, destination Destination) (Outcome, error)
}

// HandlerOption defines a function signature for PlayerHandler's functional options.
type HandlerOption func(handler *PlayerHandler)

// WithExactLocalMatch requires the sender text to equal the local player's name
// instead of merely ending with it.
func WithExactLocalMatch() HandlerOption {
	return func(handler *PlayerHandler) {
		handler.exact = true
	}
}

// PlayerHandler forwards messages whose sender resolves to a player.
type PlayerHandler struct {
	identities IdentityProvider
	exact      bool
}

var _ Handler = (*PlayerHandler)(nil)

// NewPlayerHandler creates a PlayerHandler. identities may be nil, in which case
// only events carrying a player reference are forwarded.
func NewPlayerHandler(identities IdentityProvider, options ...HandlerOption) *PlayerHandler {
	handler := &PlayerHandler{identities: identities}
	for _, opt := range options {
		opt(handler)
	}
	return handler
}

// Handle resolves the sender and forwards the message body.
func (h *PlayerHandler) Handle(ctx context.Context, event chat.ChatEvent, destination Destination) (Outcome, error) {
	identity, ok := h.Resolve(event.Sender)
	if !ok {
		return OutcomeUnattributed, nil
	}

	if err := destination.Send(ctx, identity.Name, identity.World, event.Message, event.Channel); err != nil {
		return OutcomeFailed, err
	}
	return OutcomeForwarded, nil
}

// Resolve returns the identity of the sender.
// A player reference in the sender text wins. Without one, the game is echoing the
// local player's own message, recognized by the rendered sender ending with the
// local player's name; decorations such as titles precede the name.
func (h *PlayerHandler) Resolve(sender chat.RichText) (chat.Identity, bool) {
	if player, ok := sender.Player(); ok {
		return player.Identity(), true
	}

	if h.identities == nil {
		return chat.Identity{}, false
	}
	local, ok := h.identities.LocalPlayer()
	if !ok {
		return chat.Identity{}, false
	}

	text := strings.TrimSpace(sender.Text())
	if text == "" {
		return chat.Identity{}, false
	}

	if h.exact {
		if text != local.Name {
			return chat.Identity{}, false
		}
	} else if !strings.HasSuffix(text, local.Name) {
		return chat.Identity{}, false
	}
	return local, true
}
