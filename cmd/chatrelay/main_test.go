package main

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/oklahomer/go-sarah-chatrelay/chat"
	"github.com/oklahomer/go-sarah-chatrelay/relay"
	"github.com/stretchr/testify/require"
)

type routerFunc func(ctx context.Context, event chat.ChatEvent) (relay.Outcome, error)

func (f routerFunc) Route(ctx context.Context, event chat.ChatEvent) (relay.Outcome, error) {
	return f(ctx, event)
}

// blockingLog blocks reads until it is closed.
type blockingLog struct {
	once   sync.Once
	closed chan struct{}
}

func (b *blockingLog) Read([]byte) (int, error) {
	<-b.closed
	return 0, io.EOF
}

func (b *blockingLog) Close() error {
	b.once.Do(func() { close(b.closed) })
	return nil
}

func TestRelayChatLog_EndsWithChatLog(t *testing.T) {
	req := require.New(t)
	chatLog := io.NopCloser(strings.NewReader(
		`{"channel":"Say","sender":[{"type":"player","name":"Jane Doe","world":"Gaia"}],"message":[{"type":"text","text":"hello"}]}` + "\n"))

	var routed []chat.ChannelType
	err := relayChatLog(context.Background(), chatLog, routerFunc(func(_ context.Context, event chat.ChatEvent) (relay.Outcome, error) {
		routed = append(routed, event.Channel)
		return relay.OutcomeForwarded, nil
	}))

	req.NoError(err)
	req.Equal([]chat.ChannelType{chat.Say}, routed)
}

func TestRelayChatLog_CancelClosesChatLog(t *testing.T) {
	req := require.New(t)
	chatLog := &blockingLog{closed: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- relayChatLog(ctx, chatLog, routerFunc(func(context.Context, chat.ChatEvent) (relay.Outcome, error) {
			return relay.OutcomeForwarded, nil
		}))
	}()
	cancel()

	select {
	case err := <-errCh:
		req.NoError(err)
	case <-time.After(time.Second):
		t.Fatal("relayChatLog did not return after cancellation")
	}
}
