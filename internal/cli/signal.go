package cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptContext returns a context cancelled by the first SIGINT or SIGTERM.
// The signals are handed back to the runtime after that, so a second Ctrl-C
// kills a run stuck inside a browser call that does not watch the context.
func InterruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	return interruptContext(parent, signals, func() { signal.Stop(signals) })
}

func interruptContext(parent context.Context, signals <-chan os.Signal, release func()) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	var once sync.Once
	go func() {
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
		once.Do(release)
	}()
	return ctx, func() {
		cancel()
		once.Do(release)
	}
}
