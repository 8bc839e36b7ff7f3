package discord

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/oklahomer/go-sarah-chatrelay/outbound"
	"github.com/oklahomer/go-sarah/v4"
)

// StatsProvider exposes relay delivery statistics. *outbound.Sender satisfies it.
type StatsProvider interface {
	Stats() outbound.Stats
}

var _ StatsProvider = (*outbound.Sender)(nil)

// StatusCommand builds a command that replies with the relay's connection state and delivery counters.
func (a *Adapter) StatusCommand(stats StatsProvider) (*sarah.CommandProps, error) {
	pattern, err := regexp.Compile(`^` + regexp.QuoteMeta(a.config.StatusCommand) + `\b`)
	if err != nil {
		return nil, fmt.Errorf("invalid status command %q: %w", a.config.StatusCommand, err)
	}

	return sarah.NewCommandPropsBuilder().
		BotType(DISCORD).
		Identifier("relay").
		MatchPattern(pattern).
		Func(func(_ context.Context, input sarah.Input) (*sarah.CommandResponse, error) {
			return NewResponse(input, a.statusText(stats.Stats()))
		}).
		Instruction(fmt.Sprintf("Input %s to see the chat relay status.", a.config.StatusCommand)).
		Build()
}

func (a *Adapter) statusText(stats outbound.Stats) string {
	state := "disconnected"
	if a.Connected() {
		state = "connected"
	}

	last := "never"
	if !stats.LastSentAt.IsZero() {
		last = stats.LastSentAt.Format(time.RFC3339)
	}

	return fmt.Sprintf("Relay is %s. Sent: %d, failed: %d, last sent: %s.", state, stats.Sent, stats.Failed, last)
}
