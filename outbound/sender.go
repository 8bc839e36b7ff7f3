package outbound

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklahomer/go-sarah-chatrelay/chat"
	"golang.org/x/sync/semaphore"
)

// Transport submits a raw command string to the destination.
// Submit may run on whatever goroutine the destination requires but must return once delivery finished or failed.
type Transport interface {
	Submit(ctx context.Context, command string) error
}

// Session reports whether the destination is ready to accept commands.
type Session interface {
	Connected() bool
}

// Printer shows a delivered message locally.
type Printer interface {
	Print(text string) error
}

// SessionFunc adapts a function to Session.
type SessionFunc func() bool

// Connected calls f.
func (f SessionFunc) Connected() bool {
	return f()
}

// Stats is a snapshot of Sender activity.
type Stats struct {
	Sent       uint64
	Failed     uint64
	LastSentAt time.Time
}

// SenderOption defines a function signature for Sender's functional options.
type SenderOption func(sender *Sender)

// WithClock replaces the clock used for rate limiting.
func WithClock(clock Clock) SenderOption {
	return func(sender *Sender) {
		sender.clock = clock
	}
}

// WithPrinter sets the Printer used when Config.Echo is enabled.
func WithPrinter(printer Printer) SenderOption {
	return func(sender *Sender) {
		sender.printer = printer
	}
}

// WithCommands replaces the default channel command table.
func WithCommands(commands chat.ChannelCommandMap) SenderOption {
	return func(sender *Sender) {
		sender.commands = commands
	}
}

// WithLogger replaces the go-kasumi backed logger.
func WithLogger(l Logger) SenderOption {
	return func(sender *Sender) {
		sender.log = l
	}
}

// Sender delivers commands to a Transport one at a time, keeping Config.MinInterval between submissions.
type Sender struct {
	config    *Config
	transport Transport
	session   Session
	commands  chat.ChannelCommandMap
	clock     Clock
	printer   Printer
	log       Logger

	gate    *semaphore.Weighted
	limiter *Limiter

	closed   atomic.Bool
	shutdown context.Context
	stop     context.CancelFunc

	mu    sync.Mutex
	stats Stats
}

// NewSender creates a new Sender with the given Config, Transport, Session and options.
// A nil session is treated as always connected. An error is returned when the command
// table leaves any channel unclassified.
func NewSender(config *Config, transport Transport, session Session, options ...SenderOption) (*Sender, error) {
	sender := &Sender{
		config:    config,
		transport: transport,
		session:   session,
		commands:  chat.DefaultCommands(),
		clock:     SystemClock{},
		log:       DefaultLogger(),
		gate:      semaphore.NewWeighted(1),
	}

	for _, opt := range options {
		opt(sender)
	}

	if err := sender.commands.Validate(); err != nil {
		return nil, fmt.Errorf("invalid command table: %w", err)
	}

	if sender.session == nil {
		sender.session = SessionFunc(func() bool { return true })
	}
	if sender.printer == nil {
		sender.printer = &LogPrinter{Logger: sender.log}
	}
	sender.limiter = NewLimiter(config.MinInterval, sender.clock)
	sender.shutdown, sender.stop = context.WithCancel(context.Background())

	return sender, nil
}

// Send posts text to the given channel.
func (s *Sender) Send(ctx context.Context, text string, channel chat.ChannelType) error {
	return s.SendAs(ctx, chat.Identity{}, text, channel)
}

// SendAs posts text to the given channel on behalf of from.
// The identity never becomes part of the command; it appears in logs and in the local echo.
func (s *Sender) SendAs(ctx context.Context, from chat.Identity, text string, channel chat.ChannelType) error {
	if err := s.precondition(); err != nil {
		return s.report(err)
	}

	command, ok := s.commands.Command(channel)
	if !ok {
		return s.report(fmt.Errorf("%w: %s", ErrUnsendableChannel, channel))
	}

	return s.deliver(ctx, from, command, text)
}

// SendDirect sends text as a direct message to target.
func (s *Sender) SendDirect(ctx context.Context, target chat.Identity, text string) error {
	if err := s.precondition(); err != nil {
		return s.report(err)
	}

	if target.IsZero() {
		return s.report(ErrNoRecipient)
	}

	command, ok := s.commands.Command(chat.TellOutgoing)
	if !ok {
		return s.report(fmt.Errorf("%w: %s", ErrUnsendableChannel, chat.TellOutgoing))
	}

	return s.deliver(ctx, chat.Identity{}, command+" "+target.String(), text)
}

// Stats returns a snapshot of delivery counters.
func (s *Sender) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Close stops accepting messages. Callers waiting for the gate or the interval return ErrClosed.
// A submission already handed to the Transport sees its context canceled.
func (s *Sender) Close() error {
	if s.closed.CompareAndSwap(false, true) {
		s.stop()
	}
	return nil
}

func (s *Sender) precondition() error {
	if s.closed.Load() {
		return ErrClosed
	}
	if !s.session.Connected() {
		return ErrNotConnected
	}
	return nil
}

func (s *Sender) deliver(ctx context.Context, from chat.Identity, prefix string, text string) error {
	body := Sanitize(text, s.config.MaxLength)
	if body == "" {
		return s.report(ErrEmptyMessage)
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	stop := context.AfterFunc(s.shutdown, func() {
		cancel(ErrClosed)
	})
	defer stop()

	if err := s.gate.Acquire(ctx, 1); err != nil {
		return s.report(interrupted(ctx))
	}
	defer s.gate.Release(1)

	// Close may have happened before the shutdown callback canceled ctx.
	if s.closed.Load() {
		return s.report(ErrClosed)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return s.report(interrupted(ctx))
	}
	if s.closed.Load() {
		return s.report(ErrClosed)
	}

	command := prefix + " " + body
	if err := s.submit(ctx, command); err != nil {
		return s.report(err)
	}

	sentAt := s.limiter.Mark()
	s.mu.Lock()
	s.stats.Sent++
	s.stats.LastSentAt = sentAt
	s.mu.Unlock()

	if from.IsZero() {
		s.log.Debugf("Sent %s", prefix)
	} else {
		s.log.Debugf("Sent %s for %s", prefix, from)
	}

	if s.config.Echo {
		echo := body
		if !from.IsZero() {
			echo = fmt.Sprintf("[%s] %s", from, body)
		}
		if err := s.printer.Print(echo); err != nil {
			s.log.Warnf("Failed to echo message: %+v", err)
		}
	}

	return nil
}

func (s *Sender) submit(ctx context.Context, command string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &TransportError{Command: command, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := s.transport.Submit(ctx, command); err != nil {
		if ctx.Err() != nil {
			return interrupted(ctx)
		}
		return &TransportError{Command: command, Err: err}
	}
	return nil
}

// interrupted tells a Close apart from the caller's own cancellation.
func interrupted(ctx context.Context) error {
	if errors.Is(context.Cause(ctx), ErrClosed) {
		return ErrClosed
	}
	return ctx.Err()
}

func (s *Sender) report(err error) error {
	switch {
	case errors.Is(err, ErrEmptyMessage):
		s.log.Debugf("Dropping message: %+v", err)

	case IsCancellation(err):
		s.log.Debugf("Message was not sent: %+v", err)

	default:
		s.mu.Lock()
		s.stats.Failed++
		s.mu.Unlock()
		s.log.Errorf("Failed to send message: %+v", err)
	}
	return err
}
