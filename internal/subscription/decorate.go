package subscription

import (
	"context"

	"github.com/glint-ui/glint/internal/identity"
)

// mapRecipe transforms the output of an inner recipe. Identity is the inner
// identity plus the mapper function, so remapping is a new subscription.
type mapRecipe[A, B any] struct {
	inner Recipe[A]
	f     func(A) B
}

func (m *mapRecipe[A, B]) Hash(h *identity.Hasher) {
	h.WriteString("subscription.Map")
	m.inner.Hash(h)
	h.WriteUint64(funcIdentity(m.f))
}

func (m *mapRecipe[A, B]) ConsumesEvents() bool {
	return WantsEvents(m.inner)
}

func (m *mapRecipe[A, B]) Stream(ctx context.Context, input <-chan Event) <-chan B {
	in := m.inner.Stream(ctx, input)
	out := make(chan B)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- m.f(v):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// withRecipe pairs a context value with every output of an inner recipe.
type withRecipe[V, T any] struct {
	inner Recipe[T]
	value V
}

func (w *withRecipe[V, T]) Hash(h *identity.Hasher) {
	h.WriteString("subscription.With")
	h.WriteValue(w.value)
	w.inner.Hash(h)
}

func (w *withRecipe[V, T]) ConsumesEvents() bool {
	return WantsEvents(w.inner)
}

func (w *withRecipe[V, T]) Stream(ctx context.Context, input <-chan Event) <-chan Tagged[V, T] {
	in := w.inner.Stream(ctx, input)
	out := make(chan Tagged[V, T])
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- Tagged[V, T]{Value: w.value, Output: v}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
