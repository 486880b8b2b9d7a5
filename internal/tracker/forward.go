package tracker

import "context"

// cancellableContext derives a context that ends when the single-use cancel
// signal fires, when the parent ends, or when the returned stop function
// runs. It is the reusable race between "keep doing the work" and "the
// tracker dropped this execution", kept independent of any subscription
// logic so it can be tested in isolation.
func cancellableContext(parent context.Context, cancel <-chan struct{}) (context.Context, context.CancelFunc) {
	ctx, stop := context.WithCancel(parent)
	go func() {
		select {
		case <-cancel:
			stop()
		case <-ctx.Done():
		}
	}()
	return ctx, stop
}

// forward drains the recipe stream into the sink until the stream ends
// naturally or ctx is cancelled. Within one execution, events reach the
// sink in the order the stream produced them, subject to the sink's own
// backpressure.
func forward[T any](ctx context.Context, stream <-chan T, sink Sink[T]) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-stream:
			if !ok {
				return
			}
			if !sink.Send(ctx, msg) {
				return
			}
		}
	}
}
