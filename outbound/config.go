package outbound

import "time"

// Config contains configuration variables for Sender.
type Config struct {
	// MaxLength is the maximum number of runes of message text in one command.
	// Longer texts are truncated and terminated with Ellipsis.
	MaxLength int `json:"max_length" yaml:"max_length"`

	// MinInterval is the minimum time between two consecutive submissions.
	MinInterval time.Duration `json:"min_interval" yaml:"min_interval"`

	// Echo prints each delivered message through the configured Printer.
	Echo bool `json:"echo" yaml:"echo"`
}

// NewConfig creates and returns a new Config instance with default settings.
func NewConfig() *Config {
	return &Config{
		MaxLength:   450,
		MinInterval: 1 * time.Second,
		Echo:        false,
	}
}
