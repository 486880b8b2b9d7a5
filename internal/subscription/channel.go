package subscription

import (
	"context"

	"github.com/glint-ui/glint/internal/identity"
	"github.com/glint-ui/glint/internal/pipe"
)

// Channel creates a subscription around an imperative, callback-driven
// source. setup runs once per execution with a refcounted sender; the
// subscription keeps producing whatever is sent for as long as any clone of
// the sender is alive (see the pipe package).
//
// id is the subscription's identity: declaring Channel with the same id
// every cycle keeps one execution alive. capacity is operational and not
// part of the identity.
func Channel[T any](id string, capacity int, setup func(context.Context, *pipe.Sender[T])) Subscription[T] {
	return FromRecipe[T](&channelRecipe[T]{id: id, capacity: capacity, setup: setup})
}

type channelRecipe[T any] struct {
	id       string
	capacity int
	setup    func(context.Context, *pipe.Sender[T])
}

func (c *channelRecipe[T]) Hash(h *identity.Hasher) {
	h.WriteString("subscription.Channel")
	h.WriteString(c.id)
}

func (c *channelRecipe[T]) Stream(ctx context.Context, _ <-chan Event) <-chan T {
	return pipe.New(ctx, c.capacity, c.setup)
}
