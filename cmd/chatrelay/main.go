// Command chatrelay forwards the game's chat log to a Discord relay channel.
//
// Usage:
//
//	export DISCORD_TOKEN="your-bot-token"
//	export DISCORD_RELAY_CHANNEL_ID="123456789012345678"
//	export CHATRELAY_PLAYER_NAME="Jane Doe"
//	export CHATRELAY_PLAYER_WORLD="Gaia"
//	chat-exporter | chatrelay
//
// Settings can also be put in a YAML file named by CHATRELAY_CONFIG, and in a .env file.
// In Discord, type .relay to see delivery statistics.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah-chatrelay/chat"
	"github.com/oklahomer/go-sarah-chatrelay/discord"
	"github.com/oklahomer/go-sarah-chatrelay/outbound"
	"github.com/oklahomer/go-sarah-chatrelay/relay"
	"github.com/oklahomer/go-sarah-chatrelay/source"
	"github.com/oklahomer/go-sarah/v4"
	"golang.org/x/sync/errgroup"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatrelay terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	// A missing .env file is fine; the environment may be set by other means.
	_ = godotenv.Load()

	config, err := loadConfig()
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	adapter, err := discord.NewAdapter(config.Discord)
	if err != nil {
		return exitConfig, fmt.Errorf("failed to create adapter: %w", err)
	}

	sender, err := outbound.NewSender(config.Outbound, adapter, adapter)
	if err != nil {
		return exitConfig, fmt.Errorf("failed to create sender: %w", err)
	}
	defer func() {
		_ = sender.Close()
	}()

	var handlerOptions []relay.HandlerOption
	if config.ExactLocalMatch {
		handlerOptions = append(handlerOptions, relay.WithExactLocalMatch())
	}
	registry, err := relay.DefaultRegistry(chat.DefaultCommands(), relay.StaticIdentity(config.LocalPlayer), handlerOptions...)
	if err != nil {
		return exitConfig, fmt.Errorf("failed to build handler registry: %w", err)
	}
	dispatcher := relay.NewDispatcher(registry, relay.NewForwarder(sender))

	storage := sarah.NewUserContextStorage(sarah.NewCacheConfig())
	sarah.RegisterBot(sarah.NewBot(adapter, sarah.BotWithStorage(storage)))

	status, err := adapter.StatusCommand(sender)
	if err != nil {
		return exitConfig, err
	}
	sarah.RegisterCommandProps(status)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := sarah.Run(ctx, sarah.NewConfig()); err != nil {
		return exitRuntime, fmt.Errorf("failed to run bot: %w", err)
	}

	chatLog, err := openChatLog(config.ChatLog)
	if err != nil {
		return exitConfig, err
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		// Nothing is left to relay once the chat log ends, so the bot stops as well.
		defer cancel()
		return relayChatLog(egCtx, chatLog, dispatcher)
	})
	eg.Go(func() error {
		<-egCtx.Done()
		logger.Infof("Shutting down...")
		return nil
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return exitRuntime, err
	}
	return exitOK, nil
}

type router interface {
	Route(ctx context.Context, event chat.ChatEvent) (relay.Outcome, error)
}

// relayChatLog routes every event of chatLog until it ends or ctx is canceled.
func relayChatLog(ctx context.Context, chatLog io.ReadCloser, r router) error {
	// Unblock a pending read on shutdown.
	stop := context.AfterFunc(ctx, func() {
		_ = chatLog.Close()
	})
	defer stop()

	err := source.NewReader(chatLog).Run(ctx, func(event chat.ChatEvent) {
		outcome, err := r.Route(ctx, event)
		if err == nil {
			logger.Debugf("%s message %s", event.Channel, outcome)
		}
	})
	if err != nil && ctx.Err() == nil {
		return err
	}
	logger.Infof("Chat log ended")
	return nil
}

func openChatLog(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return os.Stdin, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chat log: %w", err)
	}
	return f, nil
}
