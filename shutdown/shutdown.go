// Package shutdown coordinates orderly process teardown. Packages register
// hooks with BeforeShutdown; a signal (or an explicit Shutdown call) runs
// the hooks and then cancels the context returned by SetupHandler.
package shutdown

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	mu      sync.Mutex     //nolint:gochecknoglobals
	hooks   []func()       //nolint:gochecknoglobals
	signals chan os.Signal //nolint:gochecknoglobals
)

// BeforeShutdown registers a teardown hook. Hooks run in reverse
// registration order, after the shutdown signal arrives and before the
// SetupHandler context is canceled, so early-registered resources outlive
// the things built on top of them.
func BeforeShutdown(hook func()) {
	mu.Lock()
	defer mu.Unlock()

	hooks = append(hooks, hook)
}

// Shutdown starts teardown programmatically, as if a signal had arrived.
// Before SetupHandler has run it is a no-op.
func Shutdown() {
	mu.Lock()
	ch := signals
	mu.Unlock()

	if ch != nil {
		ch <- os.Interrupt
	}
}

// SetupHandler installs a SIGINT/SIGTERM handler and returns a context that
// is canceled once teardown finishes. Call it once, early in main; the
// returned context is the natural root for everything the process does.
func SetupHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	mu.Lock()
	signals = ch
	mu.Unlock()

	go func() {
		sig := <-ch
		slog.Warn("received " + sig.String() + ", shutting down")

		signal.Stop(ch)

		mu.Lock()
		signals = nil
		mu.Unlock()

		runHooks()
		cancel()
	}()

	return ctx
}

// runHooks drains the hook list, newest first.
func runHooks() {
	mu.Lock()
	defer mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}

	hooks = nil
}
