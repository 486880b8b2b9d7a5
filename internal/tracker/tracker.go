// Package tracker reconciles declared subscription recipes against running
// executions.
//
// The tracker is the only long-lived, mutable state of the effect engine.
// It is owned and mutated exclusively by the single goroutine driving the
// update cycle; the bounded channels crossing into spawned tasks are the
// only genuinely concurrent structures it touches.
package tracker

import (
	"context"
	"log/slog"

	"github.com/glint-ui/glint/internal/subscription"
)

// DefaultListenerCapacity bounds the per-execution event channel. A full
// listener drops broadcast events rather than blocking the update path.
const DefaultListenerCapacity = 100

// Sink accepts messages produced by running subscriptions. Implementations
// must be safe for concurrent use; Send honors the sink's own backpressure
// and reports false once the sink is gone.
type Sink[T any] interface {
	Send(ctx context.Context, msg T) bool
}

// ChanSink adapts a plain channel to the Sink interface.
type ChanSink[T any] chan<- T

func (s ChanSink[T]) Send(ctx context.Context, msg T) bool {
	select {
	case s <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}

// Spawn is a not-yet-scheduled subscription task. The runtime driver hands
// it to its executor; the task resolves on natural completion of the recipe
// stream or cooperatively after its execution is cancelled.
type Spawn func(context.Context)

// execution is the live bookkeeping for one running recipe: a single-use
// cancellation signal and, for event-consuming recipes, the bounded
// listener channel feeding the recipe's input.
type execution struct {
	cancel   chan struct{}
	listener chan subscription.Event
}

// Tracker is a registry of subscription executions keyed by recipe id.
// At most one live execution exists per id at any time.
//
// Not safe for concurrent use: Update, Broadcast and Close must all be
// called from the goroutine driving the update cycle.
type Tracker[T any] struct {
	executions map[uint64]*execution
	capacity   int
	logger     *slog.Logger
}

// Option configures a Tracker.
type Option[T any] func(*Tracker[T])

// WithListenerCapacity overrides the bounded event channel capacity given
// to event-consuming recipes.
func WithListenerCapacity[T any](n int) Option[T] {
	return func(t *Tracker[T]) {
		t.capacity = n
	}
}

// WithLogger sets the logger used for lifecycle and drop diagnostics.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(t *Tracker[T]) {
		t.logger = logger
	}
}

// New creates an empty Tracker.
func New[T any](opts ...Option[T]) *Tracker[T] {
	t := &Tracker[T]{
		executions: make(map[uint64]*execution),
		capacity:   DefaultListenerCapacity,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Update reconciles the declared recipes against the running executions.
//
// Recipes whose id is already tracked are left completely untouched: the
// execution, its internal task state and its cancellation handle survive,
// which is what lets a socket connection or ticker live across UI rebuilds.
// New ids get a fresh execution and a not-yet-scheduled task; tracked ids
// absent from the declared set are cancelled and removed.
//
// Only the newly created tasks are returned, so an execution is never
// scheduled twice.
func (t *Tracker[T]) Update(recipes []subscription.Recipe[T], sink Sink[T]) []Spawn {
	alive := make(map[uint64]struct{}, len(recipes))
	var spawns []Spawn

	for _, recipe := range recipes {
		recipe := recipe
		id := subscription.Identity(recipe)
		alive[id] = struct{}{}

		if _, ok := t.executions[id]; ok {
			continue
		}

		cancel := make(chan struct{})

		var listener chan subscription.Event
		if subscription.WantsEvents(recipe) {
			listener = make(chan subscription.Event, t.capacity)
		}

		// The listener doubles as the recipe's input; nil for recipes that
		// never asked for the feed.
		var input <-chan subscription.Event
		if listener != nil {
			input = listener
		}

		spawns = append(spawns, func(ctx context.Context) {
			runCtx, stop := cancellableContext(ctx, cancel)
			defer stop()
			forward(runCtx, recipe.Stream(runCtx, input), sink)
		})

		t.executions[id] = &execution{cancel: cancel, listener: listener}
		t.logger.Debug("subscription spawned", "recipe", id)
	}

	for id, e := range t.executions {
		if _, ok := alive[id]; ok {
			continue
		}
		// Closing the cancel channel unblocks the task's race on its next
		// poll; in-flight work is not preempted, only its result discarded.
		close(e.cancel)
		delete(t.executions, id)
		t.logger.Debug("subscription cancelled", "recipe", id)
	}

	return spawns
}

// Broadcast publishes an event to every execution that opted into the feed.
// It never blocks: a saturated listener drops the event with a diagnostic,
// since Broadcast runs on the hot update path. A subscriber that stopped
// draining is pruned lazily, the next cycle its recipe is not declared.
func (t *Tracker[T]) Broadcast(event subscription.Event) {
	for id, e := range t.executions {
		if e.listener == nil {
			continue
		}
		select {
		case e.listener <- event:
		default:
			t.logger.Warn("dropping event: subscription listener saturated", "recipe", id)
		}
	}
}

// Tracked returns the ids of the currently running executions, in no
// particular order.
func (t *Tracker[T]) Tracked() []uint64 {
	ids := make([]uint64, 0, len(t.executions))
	for id := range t.executions {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of running executions.
func (t *Tracker[T]) Len() int {
	return len(t.executions)
}

// Close cancels every remaining execution. Called once at shutdown by the
// runtime that owns the tracker.
func (t *Tracker[T]) Close() {
	for id, e := range t.executions {
		close(e.cancel)
		delete(t.executions, id)
	}
	t.logger.Debug("tracker closed")
}
