package relay

import (
	"context"

	"github.com/oklahomer/go-sarah-chatrelay/chat"
	"github.com/oklahomer/go-sarah-chatrelay/outbound"
)

// Outbound is the delivery side of a Forwarder. *outbound.Sender satisfies it.
type Outbound interface {
	SendAs(ctx context.Context, from chat.Identity, text string, channel chat.ChannelType) error
	SendDirect(ctx context.Context, target chat.Identity, text string) error
}

var _ Outbound = (*outbound.Sender)(nil)

// Forwarder is a Destination that hands the message body to Outbound.
// The sender identity travels next to the text, never inside it, so sanitization
// and truncation apply to the body alone. Outgoing tells go to the referenced
// player as a direct message.
type Forwarder struct {
	out Outbound
}

var _ Destination = (*Forwarder)(nil)

// NewForwarder creates a Forwarder over out.
func NewForwarder(out Outbound) *Forwarder {
	return &Forwarder{out: out}
}

// Send delivers body attributed to name@origin on channel.
func (f *Forwarder) Send(ctx context.Context, name string, origin string, body chat.RichText, channel chat.ChannelType) error {
	sender := chat.Identity{Name: name, World: origin}
	if channel == chat.TellOutgoing {
		return f.out.SendDirect(ctx, sender, body.Text())
	}
	return f.out.SendAs(ctx, sender, body.Text(), channel)
}
