package future

import (
	"runtime/debug"

	"github.com/spigot-labs/spigot/errors"
	"github.com/spigot-labs/spigot/logger"
)

// invokeCallback runs a user callback on its own goroutine so completion
// never blocks on user code. Nil callbacks are ignored. A panicking callback
// is recovered and logged; it cannot poison the future or its other
// callbacks.
func invokeCallback[T any](kind string, callback func(T), value T) {
	if callback == nil {
		return
	}

	go func() {
		defer func() {
			if err := errors.FromPanic(recover(), debug.Stack()); err != nil {
				logger.Get().Error("panic in future."+kind+" callback", "error", err)
			}
		}()

		callback(value)
	}()
}
