package runtime

import (
	"sync"

	"github.com/glint-ui/glint/internal/subscription"
)

type itemKind int

const (
	// itemMessage carries an application message for the update function.
	itemMessage itemKind = iota + 1
	// itemEvent carries a shell event to broadcast to subscriptions.
	itemEvent
)

// item is the envelope moving through the runtime queue.
type item[T any] struct {
	kind    itemKind
	message T
	event   subscription.Event
}

// queue is the thread-safe FIFO feeding the runtime's single-writer loop.
//
// It is unbounded so that command executions and subscription tasks can
// always hand their results off without blocking each other. External
// producers enqueue from any goroutine; only the Run loop dequeues.
//
// A buffered signal channel enables context-aware waiting in the loop.
type queue[T any] struct {
	mu     sync.Mutex
	items  []item[T]
	closed bool
	signal chan struct{}
}

func newQueue[T any]() *queue[T] {
	return &queue[T]{
		items:  make([]item[T], 0, 64),
		signal: make(chan struct{}, 1),
	}
}

// enqueue appends an item. Reports false once the queue is closed.
func (q *queue[T]) enqueue(it item[T]) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.items = append(q.items, it)

	// Coalescing signal; the buffer of one makes this non-blocking.
	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// tryDequeue pops the front item without blocking.
func (q *queue[T]) tryDequeue() (item[T], bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return item[T]{}, false
	}

	it := q.items[0]

	// Zero the slot so the backing array does not retain message payloads.
	q.items[0] = item[T]{}
	if len(q.items) == 1 {
		q.items = q.items[:0]
	} else {
		q.items = q.items[1:]
	}
	return it, true
}

// wait returns the availability signal for select-based waiting. The
// channel closes when the queue closes, waking every waiter.
func (q *queue[T]) wait() <-chan struct{} {
	return q.signal
}

func (q *queue[T]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// close marks the queue closed and wakes all waiters.
func (q *queue[T]) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.signal)
}
