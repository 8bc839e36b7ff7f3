package relay

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/oklahomer/go-sarah-chatrelay/chat"
	"github.com/oklahomer/go-sarah-chatrelay/outbound"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}

// mockHandler counts Handle calls and returns a fixed outcome.
type mockHandler struct {
	mu      sync.Mutex
	calls   int
	outcome Outcome
}

func (m *mockHandler) Handle(_ context.Context, _ chat.ChatEvent, _ Destination) (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.outcome, nil
}

func (m *mockHandler) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestDispatcher_Route(t *testing.T) {
	req := require.New(t)
	say := &mockHandler{outcome: OutcomeForwarded}
	party := &mockHandler{outcome: OutcomeUnattributed}
	registry, err := NewRegistry(
		Entry{Channel: chat.Say, Handler: say},
		Entry{Channel: chat.Party, Handler: party},
	)
	req.NoError(err)
	dispatcher := NewDispatcher(registry, &mockDestination{}, WithDispatcherLogger(nopLogger{}))

	outcome, err := dispatcher.Route(context.Background(), chat.ChatEvent{Channel: chat.Say})
	req.NoError(err)
	req.Equal(OutcomeForwarded, outcome)
	req.Equal(1, say.Calls())
	req.Zero(party.Calls())

	outcome, err = dispatcher.Route(context.Background(), chat.ChatEvent{Channel: chat.Party})
	req.NoError(err)
	req.Equal(OutcomeUnattributed, outcome)
	req.Equal(1, say.Calls())
	req.Equal(1, party.Calls())
}

func TestDispatcher_Route_Unroutable(t *testing.T) {
	req := require.New(t)
	say := &mockHandler{outcome: OutcomeForwarded}
	registry, err := NewRegistry(Entry{Channel: chat.Say, Handler: say})
	req.NoError(err)
	dispatcher := NewDispatcher(registry, &mockDestination{}, WithDispatcherLogger(nopLogger{}))

	outcome, err := dispatcher.Route(context.Background(), chat.ChatEvent{Channel: chat.Echo})

	req.ErrorIs(err, ErrUnroutableChannel)
	req.Contains(err.Error(), "Echo")
	req.Equal(OutcomeFailed, outcome)
	req.Zero(say.Calls())
}

func TestDispatcher_Route_Concurrent(t *testing.T) {
	req := require.New(t)
	say := &mockHandler{outcome: OutcomeForwarded}
	registry, err := NewRegistry(Entry{Channel: chat.Say, Handler: say})
	req.NoError(err)
	dispatcher := NewDispatcher(registry, &mockDestination{}, WithDispatcherLogger(nopLogger{}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = dispatcher.Route(context.Background(), chat.ChatEvent{Channel: chat.Say})
		}()
	}
	wg.Wait()

	req.Equal(50, say.Calls())
}

// recordingTransport captures submitted commands.
type recordingTransport struct {
	mu       sync.Mutex
	commands []string
}

func (r *recordingTransport) Submit(_ context.Context, command string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, command)
	return nil
}

func (r *recordingTransport) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.commands) == 0 {
		return ""
	}
	return r.commands[len(r.commands)-1]
}

func (r *recordingTransport) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.commands)
}

func TestDispatcher_EndToEnd(t *testing.T) {
	transport := &recordingTransport{}
	config := outbound.NewConfig()
	config.MinInterval = 0
	sender, err := outbound.NewSender(config, transport, nil, outbound.WithLogger(nopLogger{}))
	require.NoError(t, err)
	defer sender.Close()

	registry, err := DefaultRegistry(chat.DefaultCommands(), localPlayer)
	require.NoError(t, err)
	dispatcher := NewDispatcher(registry, NewForwarder(sender), WithDispatcherLogger(nopLogger{}))

	t.Run("explicit player on Say", func(t *testing.T) {
		req := require.New(t)
		outcome, err := dispatcher.Route(context.Background(), chat.ChatEvent{
			Channel: chat.Say,
			Sender:  chat.RichText{chat.PlayerPayload{Name: "Jane Doe", World: "Gaia"}},
			Message: chat.Plain("hello\r\nthere"),
		})

		req.NoError(err)
		req.Equal(OutcomeForwarded, outcome)
		req.Equal("/say hello there", transport.last())
	})

	t.Run("outgoing tell becomes a direct message", func(t *testing.T) {
		req := require.New(t)
		outcome, err := dispatcher.Route(context.Background(), chat.ChatEvent{
			Channel: chat.TellOutgoing,
			Sender:  chat.RichText{chat.PlayerPayload{Name: "John Roe", World: "Ultros"}},
			Message: chat.Plain("psst"),
		})

		req.NoError(err)
		req.Equal(OutcomeForwarded, outcome)
		req.Equal("/tell John Roe@Ultros psst", transport.last())
	})

	t.Run("long body is truncated without attribution", func(t *testing.T) {
		req := require.New(t)
		_, err := dispatcher.Route(context.Background(), chat.ChatEvent{
			Channel: chat.FreeCompany,
			Sender:  chat.RichText{chat.PlayerPayload{Name: "Jane Doe", World: "Gaia"}},
			Message: chat.Plain(strings.Repeat("x", 500)),
		})

		req.NoError(err)
		req.Equal("/freecompany "+strings.Repeat("x", 449)+outbound.Ellipsis, transport.last())
	})

	t.Run("local echo with blank body is dropped", func(t *testing.T) {
		req := require.New(t)
		before := transport.count()
		outcome, err := dispatcher.Route(context.Background(), chat.ChatEvent{
			Channel: chat.Linkshell2,
			Sender:  chat.Plain("Jane Doe"),
			Message: chat.Plain(" \r\n "),
		})

		req.ErrorIs(err, outbound.ErrEmptyMessage)
		req.Equal(OutcomeFailed, outcome)
		req.Equal(before, transport.count())
	})

	t.Run("incoming tell is not routed", func(t *testing.T) {
		_, err := dispatcher.Route(context.Background(), chat.ChatEvent{
			Channel: chat.TellIncoming,
			Sender:  chat.RichText{chat.PlayerPayload{Name: "John Roe", World: "Ultros"}},
			Message: chat.Plain("hi"),
		})
		require.ErrorIs(t, err, ErrUnroutableChannel)
	})
}
