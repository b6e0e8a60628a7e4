package common

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// SignalError tells which signal stopped `Interrupt`.
type SignalError struct {
	Signal os.Signal
}

func (e SignalError) Error() string {
	return fmt.Sprintf("received signal %s", e.Signal)
}

// Interrupt blocks until SIGINT or SIGTERM arrives, or cancel is closed. It
// gives `SignalError` for a signal and nil when canceled, so it can be the
// interrupt actor of a `run.Group`.
func Interrupt(cancel <-chan struct{}) error {
	return waitSignal(cancel, syscall.SIGINT, syscall.SIGTERM)
}

func waitSignal(cancel <-chan struct{}, signals ...os.Signal) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, signals...)
	defer signal.Stop(c)

	select {
	case sig := <-c:
		return SignalError{Signal: sig}
	case <-cancel:
		return nil
	}
}
