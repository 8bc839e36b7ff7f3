// Package discord connects the chat relay to Discord.
//
// Adapter is a go-sarah adapter built on discordgo. Besides serving go-sarah
// commands such as the relay status command, it is the relay's transport:
// outbound chat commands are posted to a dedicated relay channel, and the
// gateway's ready and disconnect events decide whether the relay is connected.
package discord
