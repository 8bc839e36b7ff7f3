// Package relay routes chat events to the handler registered for their channel
// and forwards attributed messages to a Destination.
package relay
