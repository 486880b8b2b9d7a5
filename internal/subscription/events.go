package subscription

import (
	"context"

	"github.com/glint-ui/glint/internal/identity"
)

// Events declares a subscription yielding the raw runtime event feed.
// It is the canonical consumer of the tracker broadcast: the recipe opts
// into the feed and forwards every event it manages to receive. Events
// arriving while the subscriber is saturated are dropped upstream.
func Events() Subscription[Event] {
	return FromRecipe[Event](eventsRecipe{})
}

type eventsRecipe struct{}

func (eventsRecipe) Hash(h *identity.Hasher) {
	h.WriteString("subscription.Events")
}

func (eventsRecipe) ConsumesEvents() bool {
	return true
}

func (eventsRecipe) Stream(ctx context.Context, input <-chan Event) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-input:
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
