package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Netflix/go-env"
	"github.com/oklahomer/go-sarah-chatrelay/chat"
	"github.com/oklahomer/go-sarah-chatrelay/discord"
	"github.com/oklahomer/go-sarah-chatrelay/outbound"
	"gopkg.in/yaml.v3"
)

// Config is the process configuration. It is read from an optional YAML file
// and then overridden by environment variables.
type Config struct {
	Discord  *discord.Config  `yaml:"discord"`
	Outbound *outbound.Config `yaml:"outbound"`

	// LocalPlayer identifies the player whose own messages appear without a player reference.
	LocalPlayer chat.Identity `yaml:"local_player"`

	// ExactLocalMatch requires the sender to equal LocalPlayer.Name instead of ending with it.
	ExactLocalMatch bool `yaml:"exact_local_match"`

	// ChatLog is the path of the JSON lines chat log. "-" reads standard input.
	ChatLog string `yaml:"chat_log"`
}

// envConfig lists the environment overrides. Unset variables leave the file value in place.
type envConfig struct {
	ConfigFile      string         `env:"CHATRELAY_CONFIG"`
	Token           *string        `env:"DISCORD_TOKEN"`
	RelayChannelID  *string        `env:"DISCORD_RELAY_CHANNEL_ID"`
	PlayerName      *string        `env:"CHATRELAY_PLAYER_NAME"`
	PlayerWorld     *string        `env:"CHATRELAY_PLAYER_WORLD"`
	ExactLocalMatch *bool          `env:"CHATRELAY_EXACT_LOCAL_MATCH"`
	ChatLog         *string        `env:"CHATRELAY_CHAT_LOG"`
	MaxLength       *int           `env:"CHATRELAY_MAX_LENGTH"`
	MinInterval     *time.Duration `env:"CHATRELAY_MIN_INTERVAL"`
	Echo            *bool          `env:"CHATRELAY_ECHO"`
}

// NewConfig creates and returns a new Config instance with default settings.
func NewConfig() *Config {
	return &Config{
		Discord:  discord.NewConfig(),
		Outbound: outbound.NewConfig(),
		ChatLog:  "-",
	}
}

func loadConfig() (*Config, error) {
	var e envConfig
	if _, err := env.UnmarshalFromEnviron(&e); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	config := NewConfig()
	if e.ConfigFile != "" {
		if err := readConfigFile(e.ConfigFile, config); err != nil {
			return nil, err
		}
	}
	e.apply(config)

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func readConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (e *envConfig) apply(config *Config) {
	if e.Token != nil {
		config.Discord.Token = *e.Token
	}
	if e.RelayChannelID != nil {
		config.Discord.RelayChannelID = *e.RelayChannelID
	}
	if e.PlayerName != nil {
		config.LocalPlayer.Name = *e.PlayerName
	}
	if e.PlayerWorld != nil {
		config.LocalPlayer.World = *e.PlayerWorld
	}
	if e.ExactLocalMatch != nil {
		config.ExactLocalMatch = *e.ExactLocalMatch
	}
	if e.ChatLog != nil {
		config.ChatLog = *e.ChatLog
	}
	if e.MaxLength != nil {
		config.Outbound.MaxLength = *e.MaxLength
	}
	if e.MinInterval != nil {
		config.Outbound.MinInterval = *e.MinInterval
	}
	if e.Echo != nil {
		config.Outbound.Echo = *e.Echo
	}
}

func (c *Config) validate() error {
	if c.Discord == nil || c.Outbound == nil {
		return fmt.Errorf("discord and outbound sections must not be empty")
	}
	if c.Discord.RelayChannelID == "" {
		return discord.ErrEmptyRelayChannel
	}
	if c.Outbound.MaxLength <= 0 {
		return fmt.Errorf("max length must be positive, got %d", c.Outbound.MaxLength)
	}
	if c.Outbound.MinInterval < 0 {
		return fmt.Errorf("min interval must not be negative, got %s", c.Outbound.MinInterval)
	}
	return nil
}
