package future_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spigot-labs/spigot/future"
)

var errUnreachable = errors.New("backend unreachable")

// ExampleGo demonstrates running a computation in the background and waiting
// for its result.
func ExampleGo() {
	ctx := context.Background()

	fut := future.Go(func() (int, error) {
		return 21 * 2, nil
	})

	value, err := fut.Wait(ctx)

	fmt.Println(value, err)
	// Output: 42 <nil>
}

// ExampleNew demonstrates the producer/consumer split between a promise and
// its future.
func ExampleNew() {
	ctx := context.Background()

	fut, promise := future.New[string]()

	go func() {
		promise.Success("ready")
	}()

	value, _ := fut.Wait(ctx)

	fmt.Println(value)
	// Output: ready
}

// ExampleFuture_Wait demonstrates bounding a wait with a context deadline.
func ExampleFuture_Wait() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	fut := future.NewError[int](errUnreachable)

	_, err := fut.Wait(ctx)

	fmt.Println(err)
	// Output: backend unreachable
}

// ExampleFuture_OnSuccess demonstrates subscribing to a result instead of
// blocking for it.
func ExampleFuture_OnSuccess() {
	done := make(chan struct{})

	fut := future.Go(func() (string, error) {
		return "delivered", nil
	})

	fut.OnSuccess(func(value string) {
		fmt.Println(value)
		close(done)
	})

	<-done
	// Output: delivered
}
