// Package pipe bridges imperative, callback-driven sources into bounded
// channels.
//
// New runs a user setup function once with a refcounted Sender and hands
// back the receiving end. The sequence keeps yielding whatever is sent for
// as long as any clone of the Sender is alive; it does not end just because
// setup returned. This is the building block for custom subscription
// recipes around sources that push values over time.
package pipe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Sender is one refcounted handle on the producing side of a bounded
// channel. Handles may be cloned and passed to callbacks; the channel
// closes once every handle has been closed.
//
// Send applies normal blocking backpressure: when the channel is full the
// producer waits, unlike the runtime broadcast which drops on saturation.
type Sender[T any] struct {
	ch    chan T
	refs  *atomic.Int64
	close sync.Once
}

// Send delivers one value, blocking while the channel is full.
// It reports false if ctx ended before the value was accepted.
func (s *Sender[T]) Send(ctx context.Context, v T) bool {
	select {
	case s.ch <- v:
		return true
	case <-ctx.Done():
		return false
	}
}

// TrySend delivers one value only if the channel has room.
func (s *Sender[T]) TrySend(v T) bool {
	select {
	case s.ch <- v:
		return true
	default:
		return false
	}
}

// Clone returns a new handle sharing the same channel. The channel stays
// open until the clone is closed too.
func (s *Sender[T]) Clone() *Sender[T] {
	s.refs.Add(1)
	return &Sender[T]{ch: s.ch, refs: s.refs}
}

// Close releases this handle. Closing the last live handle closes the
// channel, ending the receiving sequence. Close is idempotent per handle.
func (s *Sender[T]) Close() {
	s.close.Do(func() {
		if s.refs.Add(-1) == 0 {
			close(s.ch)
		}
	})
}

// New creates a bounded channel of the given capacity and runs setup once
// in its own goroutine with a fresh Sender. The returned channel yields
// everything sent through the Sender and its clones, and closes when the
// last handle is released. setup's own handle is released when it returns.
func New[T any](ctx context.Context, capacity int, setup func(context.Context, *Sender[T])) <-chan T {
	refs := &atomic.Int64{}
	refs.Add(1)

	s := &Sender[T]{ch: make(chan T, capacity), refs: refs}
	go func() {
		defer s.Close()
		setup(ctx, s)
	}()
	return s.ch
}
