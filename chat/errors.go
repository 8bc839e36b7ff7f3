package chat

import "errors"

// ErrUnknownChannel indicates that a channel name or value is not a declared ChannelType.
var ErrUnknownChannel = errors.New("unknown chat channel")

// ErrUnclassifiedChannel indicates that a ChannelCommandMap lacks an entry for a declared channel.
var ErrUnclassifiedChannel = errors.New("channel is neither mapped nor marked unsendable")
