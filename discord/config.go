package discord

import "github.com/bwmarrin/discordgo"

// Config contains configuration variables for the Discord Adapter.
type Config struct {
	// Token is the Discord bot token used for authentication.
	Token string `json:"token" yaml:"token"`

	// RelayChannelID is the channel relayed chat commands are posted to.
	RelayChannelID string `json:"relay_channel_id" yaml:"relay_channel_id"`

	// HelpCommand is the command string that triggers help.
	// When a user sends this exact string, the input is converted to sarah.HelpInput.
	HelpCommand string `json:"help_command" yaml:"help_command"`

	// AbortCommand is the command string that triggers context cancellation.
	// When a user sends this exact string, the input is converted to sarah.AbortInput.
	AbortCommand string `json:"abort_command" yaml:"abort_command"`

	// StatusCommand is the prefix of the command reporting relay statistics.
	StatusCommand string `json:"status_command" yaml:"status_command"`

	// Intents declares the Gateway Intents the bot requires.
	Intents discordgo.Intent `json:"intents" yaml:"intents"`
}

// NewConfig creates and returns a new Config instance with default settings.
// Token and RelayChannelID are empty and must be set before use.
func NewConfig() *Config {
	return &Config{
		Token:          "",
		RelayChannelID: "",
		HelpCommand:    ".help",
		AbortCommand:   ".abort",
		StatusCommand:  ".relay",
		Intents:        discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentsMessageContent,
	}
}
