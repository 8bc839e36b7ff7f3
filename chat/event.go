package chat

import (
	"strings"
	"time"
)

// Identity is the name and home world attributed to a message sender.
type Identity struct {
	Name  string `json:"name" yaml:"name"`
	World string `json:"world" yaml:"world"`
}

// String renders the identity as Name@World, or just Name when the world is unknown.
func (i Identity) String() string {
	if i.World == "" {
		return i.Name
	}
	return i.Name + "@" + i.World
}

// IsZero reports whether no name is set.
func (i Identity) IsZero() bool {
	return i.Name == ""
}

// Payload is one segment of a RichText value.
// The set is closed: TextPayload and PlayerPayload.
type Payload interface {
	text() string
}

// TextPayload is a plain text segment.
type TextPayload struct {
	Text string
}

func (p TextPayload) text() string {
	return p.Text
}

// PlayerPayload is a reference to a player, carrying the name and world.
type PlayerPayload struct {
	Name  string
	World string
}

func (p PlayerPayload) text() string {
	return p.Name
}

// Identity returns the referenced player as an Identity.
func (p PlayerPayload) Identity() Identity {
	return Identity{Name: p.Name, World: p.World}
}

// RichText is a sequence of payloads as delivered by the game's chat log.
type RichText []Payload

// Plain builds a RichText of a single text payload.
func Plain(text string) RichText {
	return RichText{TextPayload{Text: text}}
}

// Text renders the payloads as plain text.
func (r RichText) Text() string {
	var b strings.Builder
	for _, p := range r {
		b.WriteString(p.text())
	}
	return b.String()
}

// Player returns the first player reference, if any.
func (r RichText) Player() (PlayerPayload, bool) {
	for _, p := range r {
		if player, ok := p.(PlayerPayload); ok {
			return player, true
		}
	}
	return PlayerPayload{}, false
}

// ChatEvent is one message observed on the game's chat log.
type ChatEvent struct {
	Channel   ChannelType
	Sender    RichText
	Message   RichText
	Timestamp time.Time
}
