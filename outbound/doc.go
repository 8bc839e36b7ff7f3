// Package outbound delivers chat commands to a Transport one at a time.
//
// A Sender sanitizes and truncates the message text, resolves the command
// prefix for the target channel, and then serializes delivery behind a
// single-slot gate while keeping a minimum interval between two consecutive
// submissions. Every failure is reported as an error value; nothing escaping
// the transport reaches the caller as a panic.
package outbound
