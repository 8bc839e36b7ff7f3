// Package source reads chat events exported from the game client's chat log.
//
// Each line is a JSON object:
//
//	{"channel":"Say","sender":[{"type":"player","name":"Jane Doe","world":"Gaia"}],
//	 "message":[{"type":"text","text":"hello"}],"timestamp":"2024-05-01T12:00:00Z"}
package source

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah-chatrelay/chat"
)

// ErrUnknownPayload indicates a payload whose type is neither "text" nor "player".
var ErrUnknownPayload = errors.New("unknown payload type")

// maxLineSize bounds a single chat log line.
const maxLineSize = 64 * 1024

type payload struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Name  string `json:"name,omitempty"`
	World string `json:"world,omitempty"`
}

type line struct {
	Channel   chat.ChannelType `json:"channel"`
	Sender    []payload        `json:"sender"`
	Message   []payload        `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
}

// ParseLine decodes one chat log line.
func ParseLine(data []byte) (chat.ChatEvent, error) {
	var l line
	if err := json.Unmarshal(data, &l); err != nil {
		return chat.ChatEvent{}, fmt.Errorf("failed to decode chat line: %w", err)
	}

	if !l.Channel.Valid() {
		return chat.ChatEvent{}, fmt.Errorf("%w: missing channel", chat.ErrUnknownChannel)
	}

	sender, err := richText(l.Sender)
	if err != nil {
		return chat.ChatEvent{}, fmt.Errorf("invalid sender: %w", err)
	}
	message, err := richText(l.Message)
	if err != nil {
		return chat.ChatEvent{}, fmt.Errorf("invalid message: %w", err)
	}

	return chat.ChatEvent{
		Channel:   l.Channel,
		Sender:    sender,
		Message:   message,
		Timestamp: l.Timestamp,
	}, nil
}

func richText(payloads []payload) (chat.RichText, error) {
	text := make(chat.RichText, 0, len(payloads))
	for _, p := range payloads {
		switch p.Type {
		case "text":
			text = append(text, chat.TextPayload{Text: p.Text})
		case "player":
			text = append(text, chat.PlayerPayload{Name: p.Name, World: p.World})
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownPayload, p.Type)
		}
	}
	return text, nil
}

// Reader produces chat events from a stream of JSON lines.
type Reader struct {
	r io.Reader
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Run calls fn for each valid line until the stream ends or ctx is canceled.
// Malformed lines, including lines longer than 64 KiB, are logged and skipped.
// The context is checked between lines; a blocked read returns only when the
// underlying reader does.
func (r *Reader) Run(ctx context.Context, fn func(chat.ChatEvent)) error {
	br := bufio.NewReaderSize(r.r, 4096)

	n := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, oversized, err := readLine(br)
		if err == nil || len(data) > 0 || oversized {
			n++
		}
		switch {
		case oversized:
			logger.Warnf("Skipping chat line %d: longer than %d bytes", n, maxLineSize)

		case len(data) > 0:
			event, parseErr := ParseLine(data)
			if parseErr != nil {
				logger.Warnf("Skipping chat line %d: %+v", n, parseErr)
				break
			}
			fn(event)
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read chat log: %w", err)
		}
	}
}

// readLine returns the next line without its terminator.
// When the line exceeds maxLineSize, the rest of it is consumed and oversized is true.
func readLine(br *bufio.Reader) (data []byte, oversized bool, err error) {
	for {
		chunk, isPrefix, readErr := br.ReadLine()
		if !oversized {
			if len(data)+len(chunk) > maxLineSize {
				oversized = true
				data = nil
			} else {
				data = append(data, chunk...)
			}
		}
		if readErr != nil || !isPrefix {
			return data, oversized, readErr
		}
	}
}
