package command

import "context"

// Command is a composable description of zero or more deferred effects.
// Internally it is always a flat, ordered sequence of actions: batching
// flattens and empty commands contribute nothing. Order among the actions
// matches declaration order but carries no execution-order guarantee.
type Command[T any] struct {
	actions []Action[T]
}

// None returns a Command that produces zero actions.
func None[T any]() Command[T] {
	return Command[T]{}
}

// Single wraps exactly one action.
func Single[T any](a Action[T]) Command[T] {
	return Command[T]{actions: []Action[T]{a}}
}

// Batch combines the given commands into one. Nested batches flatten and
// empty commands are skipped; all actions run independently.
func Batch[T any](cmds ...Command[T]) Command[T] {
	var actions []Action[T]
	for _, c := range cmds {
		actions = append(actions, c.actions...)
	}
	return Command[T]{actions: actions}
}

// Done produces the given value immediately.
func Done[T any](value T) Command[T] {
	return Single(Future(func(context.Context) T {
		return value
	}))
}

// Perform runs a future that yields exactly once and maps its result with f.
func Perform[A, T any](future func(context.Context) A, f func(A) T) Command[T] {
	return Single(Future(func(ctx context.Context) T {
		return f(future(ctx))
	}))
}

// Run drains a stream that may yield many times over its lifetime, mapping
// each item with f. This is the many-shot counterpart of Perform.
func Run[A, T any](stream func(context.Context) <-chan A, f func(A) T) Command[T] {
	return Single(mapAction(Stream(stream), f))
}

// Widget wraps a synchronous widget-tree operation to be applied by the
// external widget layer.
func Widget[T any](op any) Command[T] {
	return Single(WidgetOp[T](op))
}

// Actions returns the flat sequence of actions. This is the only way to
// consume a Command; it is called by the runtime driver.
func (c Command[T]) Actions() []Action[T] {
	return c.actions
}

// Map transforms the eventual output of every contained action with f.
// The transform applies per action at the point each value resolves,
// satisfying the composition law: Map(Map(c, f), g) behaves as
// Map(c, func(x) { return g(f(x)) }).
func Map[A, B any](c Command[A], f func(A) B) Command[B] {
	if len(c.actions) == 0 {
		return Command[B]{}
	}
	actions := make([]Action[B], len(c.actions))
	for i, a := range c.actions {
		actions[i] = mapAction(a, f)
	}
	return Command[B]{actions: actions}
}
