// Package command describes one-shot deferred effects as composable values.
//
// A Command is a flat, ordered collection of actions. Building, batching
// and mapping commands has no effect by itself; the runtime driver extracts
// the actions and executes them independently. Keeping effects as data is
// what makes an application's update function deterministic and testable.
package command

import "context"

// Action describes one deferred effect that eventually yields zero or more
// values of type T. It is a closed tagged variant: a one-shot future, a
// many-shot stream, or an opaque widget operation transported to the widget
// layer.
type Action[T any] struct {
	kind    actionKind
	perform func(context.Context) T
	stream  func(context.Context) <-chan T
	widget  any
}

type actionKind uint8

const (
	actionPerform actionKind = iota + 1
	actionStream
	actionWidget
)

// Future creates an action that runs fn once and yields its result.
func Future[T any](fn func(context.Context) T) Action[T] {
	return Action[T]{kind: actionPerform, perform: fn}
}

// Stream creates an action that drains the channel built by fn, yielding
// every item over its lifetime. This is the many-shot counterpart of Future.
func Stream[T any](fn func(context.Context) <-chan T) Action[T] {
	return Action[T]{kind: actionStream, stream: fn}
}

// WidgetOp creates an action carrying a synchronous widget-tree operation.
// The operation is opaque here; the external widget layer applies it.
func WidgetOp[T any](op any) Action[T] {
	return Action[T]{kind: actionWidget, widget: op}
}

// Widget returns the carried widget operation, if any.
func (a Action[T]) Widget() (any, bool) {
	return a.widget, a.kind == actionWidget
}

// Execute runs the action to completion. Every produced value is handed to
// emit; a widget operation is handed to apply. Execute blocks until the
// action is exhausted or ctx ends.
func (a Action[T]) Execute(ctx context.Context, emit func(T), apply func(any)) {
	switch a.kind {
	case actionPerform:
		emit(a.perform(ctx))
	case actionStream:
		in := a.stream(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					return
				}
				emit(v)
			}
		}
	case actionWidget:
		apply(a.widget)
	}
}

// mapAction transforms the action's eventual outputs with f. The transform
// applies at the point each value resolves, not eagerly, so mapping composes:
// mapping by f then g is mapping by their composition.
func mapAction[A, B any](a Action[A], f func(A) B) Action[B] {
	switch a.kind {
	case actionPerform:
		inner := a.perform
		return Future(func(ctx context.Context) B {
			return f(inner(ctx))
		})
	case actionStream:
		inner := a.stream
		return Stream(func(ctx context.Context) <-chan B {
			in := inner(ctx)
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
						case out <- f(v):
						case <-ctx.Done():
							return
						}
					}
				}
			}()
			return out
		})
	default:
		return Action[B]{kind: a.kind, widget: a.widget}
	}
}
