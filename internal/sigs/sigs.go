// Package sigs gives the serve command a channel-based way to wait for
// the process termination signal, instead of wiring os/signal directly
// into the command.
package sigs

import (
	"os"
	"os/signal"
	"syscall"
)

// Terminate returns a channel that receives a value once SIGINT or
// SIGTERM arrives.
func Terminate() chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	return ch
}
