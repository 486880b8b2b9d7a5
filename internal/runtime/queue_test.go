package runtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_FIFO(t *testing.T) {
	q := newQueue[string]()

	for _, m := range []string{"a", "b", "c"} {
		require.True(t, q.enqueue(item[string]{kind: itemMessage, message: m}))
	}

	for _, want := range []string{"a", "b", "c"} {
		it, ok := q.tryDequeue()
		require.True(t, ok)
		assert.Equal(t, want, it.message)
	}

	_, ok := q.tryDequeue()
	assert.False(t, ok)
}

func TestQueue_SignalWakesWaiter(t *testing.T) {
	q := newQueue[int]()

	got := make(chan int)
	go func() {
		<-q.wait()
		it, ok := q.tryDequeue()
		if ok {
			got <- it.message
		}
	}()

	q.enqueue(item[int]{kind: itemMessage, message: 7})

	select {
	case v := <-got:
		assert.Equal(t, 7, v)
	case <-time.After(time.Second):
		t.Fatal("waiter was not woken")
	}
}

func TestQueue_CloseRejectsAndWakes(t *testing.T) {
	q := newQueue[int]()

	q.close()
	q.close() // idempotent

	assert.False(t, q.enqueue(item[int]{kind: itemMessage, message: 1}))

	select {
	case <-q.wait():
	case <-time.After(time.Second):
		t.Fatal("close did not wake waiters")
	}
	assert.Zero(t, q.len())
}

func TestQueue_CarriesEventEnvelopes(t *testing.T) {
	q := newQueue[string]()

	q.enqueue(item[string]{kind: itemEvent, event: "focus-lost"})

	it, ok := q.tryDequeue()
	require.True(t, ok)
	assert.Equal(t, itemEvent, it.kind)
	assert.Equal(t, "focus-lost", it.event)
}

func TestClock_Monotonic(t *testing.T) {
	c := NewClock()

	assert.EqualValues(t, 1, c.Next())
	assert.EqualValues(t, 2, c.Next())
	assert.EqualValues(t, 2, c.Current())
}
