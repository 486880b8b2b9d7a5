// Package runtime drives an application's update cycle.
//
// The runtime owns the subscription tracker and the message queue. It runs
// a single-writer loop: messages are dequeued one at a time, handed to the
// program's update function, the returned command's actions are executed,
// and the freshly declared subscription set is reconciled. All tracker
// mutations happen on the loop goroutine; spawned tasks communicate back
// only through the queue.
package runtime

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/glint-ui/glint/internal/command"
	"github.com/glint-ui/glint/internal/subscription"
	"github.com/glint-ui/glint/internal/tracker"
)

// Program is the application seen from the runtime: a pure update function
// from message to command, and the subscription set it currently wants.
type Program[T any] interface {
	// Update reacts to one message and describes the effects to run next.
	Update(msg T) command.Command[T]

	// Subscriptions declares the long-running event sources the program
	// wants right now. Called once per processed message; equivalent
	// declarations keep executions alive across calls.
	Subscriptions() subscription.Subscription[T]
}

// Initializer is implemented by programs that start with a command.
type Initializer[T any] interface {
	Init() command.Command[T]
}

// Runtime reconciles subscriptions and executes commands for one program.
type Runtime[T any] struct {
	program Program[T]
	tracker *tracker.Tracker[T]
	queue   *queue[T]
	clock   *Clock
	tokens  TokenGenerator
	logger  *slog.Logger
	widgets func(op any)
}

// Option configures a Runtime.
type Option[T any] func(*Runtime[T])

// WithLogger sets the runtime logger.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(r *Runtime[T]) {
		r.logger = logger
	}
}

// WithTokenGenerator overrides the correlation token source, e.g. with a
// fixed generator in tests.
func WithTokenGenerator[T any](g TokenGenerator) Option[T] {
	return func(r *Runtime[T]) {
		r.tokens = g
	}
}

// WithWidgetApplier installs the widget layer's operation applier. Widget
// operations are applied synchronously on the loop goroutine; without an
// applier they are dropped with a diagnostic.
func WithWidgetApplier[T any](apply func(op any)) Option[T] {
	return func(r *Runtime[T]) {
		r.widgets = apply
	}
}

// New creates a Runtime for the given program. The tracker is created here
// and torn down by Run; there is no hidden global state.
func New[T any](program Program[T], opts ...Option[T]) *Runtime[T] {
	r := &Runtime[T]{
		program: program,
		queue:   newQueue[T](),
		clock:   NewClock(),
		tokens:  UUIDGenerator{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.tracker = tracker.New(tracker.WithLogger[T](r.logger))
	return r
}

// Dispatch injects an application message from outside the loop.
// Thread-safe. Reports false once the runtime has stopped.
func (r *Runtime[T]) Dispatch(msg T) bool {
	return r.queue.enqueue(item[T]{kind: itemMessage, message: msg})
}

// Feed submits a shell event for broadcast to consuming subscriptions.
// Thread-safe. The broadcast itself happens on the loop goroutine.
func (r *Runtime[T]) Feed(event subscription.Event) bool {
	return r.queue.enqueue(item[T]{kind: itemEvent, event: event})
}

// Stop gracefully shuts the runtime down: the queue closes, Run drains and
// returns after every spawned task has unwound.
func (r *Runtime[T]) Stop() {
	r.queue.close()
}

// Run executes the loop until ctx ends or Stop is called.
//
// Must be called from exactly one goroutine. On shutdown every remaining
// execution is cancelled and Run blocks until all spawned tasks resolve.
func (r *Runtime[T]) Run(ctx context.Context) error {
	r.logger.Info("runtime starting")

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	group, taskCtx := errgroup.WithContext(runCtx)

	if init, ok := r.program.(Initializer[T]); ok {
		r.execute(taskCtx, group, init.Init())
	}
	r.reconcile(taskCtx, group)

	for {
		it, ok := r.queue.tryDequeue()
		if ok {
			r.process(taskCtx, group, it)
			continue
		}

		select {
		case <-ctx.Done():
			r.logger.Info("runtime stopping: context cancelled")
			r.shutdown(stop, group)
			return ctx.Err()

		case <-r.queue.wait():
			// The signal channel closes when the queue closes, so an empty
			// queue after a wake means Stop was called.
			if r.queue.len() == 0 {
				r.logger.Info("runtime stopping: queue closed")
				r.shutdown(stop, group)
				return nil
			}
		}
	}
}

// process handles one queue item. Runs only on the loop goroutine.
func (r *Runtime[T]) process(ctx context.Context, group *errgroup.Group, it item[T]) {
	switch it.kind {
	case itemEvent:
		r.tracker.Broadcast(it.event)

	case itemMessage:
		seq := r.clock.Next()
		r.logger.Debug("processing message", "seq", seq)

		cmd := r.program.Update(it.message)
		r.execute(ctx, group, cmd)
		r.reconcile(ctx, group)
	}
}

// reconcile diffs the program's declared subscriptions and schedules the
// newly created tasks.
func (r *Runtime[T]) reconcile(ctx context.Context, group *errgroup.Group) {
	spawns := r.tracker.Update(r.program.Subscriptions().Recipes(), queueSink[T]{q: r.queue})
	for _, spawn := range spawns {
		spawn := spawn
		token := r.tokens.Generate()
		r.logger.Debug("spawning subscription task", "token", token)
		group.Go(func() error {
			spawn(ctx)
			r.logger.Debug("subscription task resolved", "token", token)
			return nil
		})
	}
}

// execute runs a command's actions. Widget operations apply synchronously
// on the loop goroutine; everything else runs independently, delivering
// its outputs back through the queue.
func (r *Runtime[T]) execute(ctx context.Context, group *errgroup.Group, cmd command.Command[T]) {
	for _, a := range cmd.Actions() {
		if op, ok := a.Widget(); ok {
			if r.widgets == nil {
				r.logger.Warn("dropping widget operation: no applier configured")
				continue
			}
			r.widgets(op)
			continue
		}

		a := a
		token := r.tokens.Generate()
		group.Go(func() error {
			a.Execute(ctx, func(v T) {
				r.queue.enqueue(item[T]{kind: itemMessage, message: v})
			}, func(any) {})
			r.logger.Debug("action resolved", "token", token)
			return nil
		})
	}
}

// shutdown cancels every remaining execution and waits for all spawned
// tasks to unwind. Runs only on the loop goroutine.
func (r *Runtime[T]) shutdown(stop context.CancelFunc, group *errgroup.Group) {
	r.tracker.Close()
	r.queue.close()
	stop()
	_ = group.Wait()
}

// queueSink lets subscription executions deliver into the runtime queue.
type queueSink[T any] struct {
	q *queue[T]
}

func (s queueSink[T]) Send(_ context.Context, msg T) bool {
	return s.q.enqueue(item[T]{kind: itemMessage, message: msg})
}
