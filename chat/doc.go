// Package chat defines the chat events observed on the game client's chat log
// and the table mapping each chat channel to the command that posts to it.
package chat
