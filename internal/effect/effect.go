// Package effect wraps framework-flavoured one-shot effects as commands.
//
// The engine core stays free of platform bindings: each helper takes the
// actual I/O function as an argument and a callback that turns its typed
// result into an application message. Effect-internal failures are opaque
// to the runtime; surfacing them is the callback's job.
package effect

import (
	"context"

	"github.com/glint-ui/glint/internal/command"
)

// LoadFont wraps a font-loading future. done receives the load error (nil
// on success) and produces the resulting message.
func LoadFont[T any](load func(context.Context) error, done func(error) T) command.Command[T] {
	return command.Perform(load, done)
}

// ClipboardContents carries the outcome of a clipboard read.
type ClipboardContents struct {
	Text string
	Err  error
}

// ReadClipboard wraps a clipboard read future.
func ReadClipboard[T any](read func(context.Context) (string, error), done func(ClipboardContents) T) command.Command[T] {
	return command.Perform(func(ctx context.Context) ClipboardContents {
		text, err := read(ctx)
		return ClipboardContents{Text: text, Err: err}
	}, done)
}

// WriteClipboard wraps a clipboard write future.
func WriteClipboard[T any](text string, write func(context.Context, string) error, done func(error) T) command.Command[T] {
	return command.Perform(func(ctx context.Context) error {
		return write(ctx, text)
	}, done)
}
