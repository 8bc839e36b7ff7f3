package chat

import "fmt"

// Unsendable marks a channel that can be observed but never written to.
const Unsendable = ""

// ChannelCommandMap maps a ChannelType to the slash command that posts to it.
// Every declared channel must have an entry; Unsendable is an explicit entry, not a fallback.
type ChannelCommandMap map[ChannelType]string

// DefaultCommands returns the command table for the game's chat channels.
func DefaultCommands() ChannelCommandMap {
	commands := ChannelCommandMap{
		Say:           "/say",
		Shout:         "/shout",
		Yell:          "/yell",
		Party:         "/party",
		CrossParty:    "/party",
		Alliance:      "/alliance",
		FreeCompany:   "/freecompany",
		NoviceNetwork: "/beginner",
		PvPTeam:       "/pvpteam",
		TellOutgoing:  "/tell",
		Emote:         "/emote",

		TellIncoming:  Unsendable,
		StandardEmote: Unsendable,
		Echo:          Unsendable,
		System:        Unsendable,
		Error:         Unsendable,
	}
	for i := 0; i < 8; i++ {
		commands[Linkshell1+ChannelType(i)] = fmt.Sprintf("/linkshell%d", i+1)
		commands[CrossLinkshell1+ChannelType(i)] = fmt.Sprintf("/cwlinkshell%d", i+1)
	}
	return commands
}

// Command returns the command prefix for c.
// The second value is false when c is unsendable or has no entry.
func (m ChannelCommandMap) Command(c ChannelType) (string, bool) {
	command, ok := m[c]
	if !ok || command == Unsendable {
		return "", false
	}
	return command, true
}

// Sendable returns the channels that have a command, in declaration order.
func (m ChannelCommandMap) Sendable() []ChannelType {
	var channels []ChannelType
	for _, c := range AllChannels() {
		if _, ok := m.Command(c); ok {
			channels = append(channels, c)
		}
	}
	return channels
}

// Validate checks that every declared channel is classified.
func (m ChannelCommandMap) Validate() error {
	for _, c := range AllChannels() {
		if _, ok := m[c]; !ok {
			return fmt.Errorf("%w: %s has no command entry", ErrUnclassifiedChannel, c)
		}
	}
	return nil
}
