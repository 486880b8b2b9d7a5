// Package subscription declares long-running event sources as plain data.
//
// An application produces a fresh Subscription every update cycle. Each
// recipe inside it describes one event source: how to compute a stable
// identity for itself and how to turn itself into an event-producing
// channel. The tracker diffs recipe identities across cycles, so an
// equivalent recipe re-declared every cycle keeps its running execution
// alive instead of restarting it.
package subscription

import (
	"context"
	"reflect"

	"github.com/glint-ui/glint/internal/identity"
)

// Event is a runtime-level event fed into subscriptions that opt into the
// broadcast feed. Its concrete type is owned by the surrounding shell; this
// package only transports it.
type Event = any

// Recipe describes one long-running event source yielding values of type T.
//
// Recipes are immutable, ephemeral values recreated every cycle. Identity is
// computed from the hashed type tag and field values, never from the
// instance, so two structurally equal recipes are the same subscription.
type Recipe[T any] interface {
	// Hash feeds the recipe's type tag first, then each identity-relevant
	// field in a fixed order.
	Hash(h *identity.Hasher)

	// Stream builds the event-producing sequence. The returned channel must
	// be closed when the source ends naturally, and the producing goroutine
	// must unwind when ctx is cancelled.
	//
	// input carries runtime events broadcast by the shell. It is nil unless
	// the recipe opted in via EventConsumer; it is never closed by the
	// runtime, so recipes must not range over it without watching ctx.
	Stream(ctx context.Context, input <-chan Event) <-chan T
}

// EventConsumer marks recipes that want the runtime event feed as input.
// Only consenting recipes are given a listener channel; everything else is
// invisible to Broadcast. Decorators delegate to the wrapped recipe.
type EventConsumer interface {
	ConsumesEvents() bool
}

// Identity computes the 64-bit content-addressed id of a recipe.
func Identity[T any](r Recipe[T]) uint64 {
	h := identity.NewHasher()
	r.Hash(h)
	return h.Sum64()
}

// WantsEvents reports whether the recipe opted into the broadcast feed.
func WantsEvents[T any](r Recipe[T]) bool {
	if c, ok := r.(EventConsumer); ok {
		return c.ConsumesEvents()
	}
	return false
}

// funcIdentity returns a stable per-process token for a function value.
// Mapper functions are part of a decorated recipe's identity: the same
// recipe mapped by two different functions is two different subscriptions.
func funcIdentity(f any) uint64 {
	return uint64(reflect.ValueOf(f).Pointer())
}
