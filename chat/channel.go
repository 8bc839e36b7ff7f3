package chat

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ChannelType is the in-game chat channel a message was observed on.
type ChannelType uint16

const (
	Say ChannelType = iota + 1
	Shout
	Yell
	Party
	CrossParty
	Alliance
	FreeCompany
	NoviceNetwork
	PvPTeam
	Linkshell1
	Linkshell2
	Linkshell3
	Linkshell4
	Linkshell5
	Linkshell6
	Linkshell7
	Linkshell8
	CrossLinkshell1
	CrossLinkshell2
	CrossLinkshell3
	CrossLinkshell4
	CrossLinkshell5
	CrossLinkshell6
	CrossLinkshell7
	CrossLinkshell8
	TellOutgoing
	TellIncoming
	Emote
	StandardEmote
	Echo
	System
	Error
)

var channelNames = map[ChannelType]string{
	Say:             "Say",
	Shout:           "Shout",
	Yell:            "Yell",
	Party:           "Party",
	CrossParty:      "CrossParty",
	Alliance:        "Alliance",
	FreeCompany:     "FreeCompany",
	NoviceNetwork:   "NoviceNetwork",
	PvPTeam:         "PvPTeam",
	Linkshell1:      "Linkshell1",
	Linkshell2:      "Linkshell2",
	Linkshell3:      "Linkshell3",
	Linkshell4:      "Linkshell4",
	Linkshell5:      "Linkshell5",
	Linkshell6:      "Linkshell6",
	Linkshell7:      "Linkshell7",
	Linkshell8:      "Linkshell8",
	CrossLinkshell1: "CrossLinkshell1",
	CrossLinkshell2: "CrossLinkshell2",
	CrossLinkshell3: "CrossLinkshell3",
	CrossLinkshell4: "CrossLinkshell4",
	CrossLinkshell5: "CrossLinkshell5",
	CrossLinkshell6: "CrossLinkshell6",
	CrossLinkshell7: "CrossLinkshell7",
	CrossLinkshell8: "CrossLinkshell8",
	TellOutgoing:    "TellOutgoing",
	TellIncoming:    "TellIncoming",
	Emote:           "Emote",
	StandardEmote:   "StandardEmote",
	Echo:            "Echo",
	System:          "System",
	Error:           "Error",
}

var channelsByName = lo.Associate(lo.Entries(channelNames), func(e lo.Entry[ChannelType, string]) (string, ChannelType) {
	return strings.ToLower(e.Value), e.Key
})

// AllChannels returns every known ChannelType in declaration order.
func AllChannels() []ChannelType {
	channels := make([]ChannelType, 0, len(channelNames))
	for c := Say; c <= Error; c++ {
		channels = append(channels, c)
	}
	return channels
}

// String returns the channel name, or a numeric form for unknown values.
func (c ChannelType) String() string {
	if name, ok := channelNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ChannelType(%d)", uint16(c))
}

// Valid reports whether c is one of the declared channels.
func (c ChannelType) Valid() bool {
	_, ok := channelNames[c]
	return ok
}

// ParseChannelType resolves a channel by its name, ignoring case.
func ParseChannelType(name string) (ChannelType, error) {
	c, ok := channelsByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownChannel, name)
	}
	return c, nil
}

// MarshalText implements encoding.TextMarshaler.
func (c ChannelType) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChannel, uint16(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ChannelType) UnmarshalText(text []byte) error {
	parsed, err := ParseChannelType(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
