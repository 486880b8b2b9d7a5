package tracker

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glint-ui/glint/internal/subscription"
	"github.com/glint-ui/glint/internal/testutil"
)

// recordSink collects delivered messages.
type recordSink struct {
	mu   sync.Mutex
	msgs []string
}

func (s *recordSink) Send(ctx context.Context, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
	return true
}

func (s *recordSink) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.msgs...)
}

func declare(probes ...*testutil.Probe) []subscription.Recipe[string] {
	recipes := make([]subscription.Recipe[string], len(probes))
	for i, p := range probes {
		recipes[i] = p
	}
	return recipes
}

func runAll(ctx context.Context, spawns []Spawn) {
	for _, s := range spawns {
		go s(ctx)
	}
}

func waitClosed(t *testing.T, ch <-chan struct{}, msg string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal(msg)
	}
}

func TestUpdate_IdenticalSetSpawnsNothing(t *testing.T) {
	tr := New[string]()
	sink := &recordSink{}

	first := tr.Update(declare(testutil.NewProbe("a"), testutil.NewProbe("b")), sink)
	assert.Len(t, first, 2)
	assert.Equal(t, 2, tr.Len())

	// Fresh instances, same identities: reconciliation must be idempotent.
	second := tr.Update(declare(testutil.NewProbe("a"), testutil.NewProbe("b")), sink)
	assert.Empty(t, second)
	assert.Equal(t, 2, tr.Len())
}

func TestUpdate_DuplicateDeclarationsCollapse(t *testing.T) {
	tr := New[string]()

	spawns := tr.Update(declare(testutil.NewProbe("dup"), testutil.NewProbe("dup")), &recordSink{})
	assert.Len(t, spawns, 1, "duplicate ids within one cycle collapse")
	assert.Equal(t, 1, tr.Len())
}

func TestUpdate_OmittedRecipeIsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr := New[string]()
	sink := &recordSink{}

	kept := testutil.NewProbe("kept")
	dropped := testutil.NewProbe("dropped")
	runAll(ctx, tr.Update(declare(kept, dropped), sink))

	runAll(ctx, tr.Update(declare(kept), sink))

	waitClosed(t, dropped.Cancelled(), "omitted recipe was not cancelled")
	assert.Equal(t, 1, tr.Len())

	select {
	case <-kept.Cancelled():
		t.Fatal("still-declared recipe must be left untouched")
	default:
	}
}

func TestUpdate_SwapScenario(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr := New[string]()
	sink := &recordSink{}

	a := testutil.NewProbe("a")
	b := testutil.NewProbe("b")
	c := testutil.NewProbe("c")

	spawns := tr.Update(declare(a, b), sink)
	require.Len(t, spawns, 2)
	runAll(ctx, spawns)

	wantFirst := []uint64{subscription.Identity[string](a), subscription.Identity[string](b)}
	sort.Slice(wantFirst, func(i, j int) bool { return wantFirst[i] < wantFirst[j] })
	gotFirst := tr.Tracked()
	sort.Slice(gotFirst, func(i, j int) bool { return gotFirst[i] < gotFirst[j] })
	assert.Equal(t, wantFirst, gotFirst)

	// Next cycle: a continues, c is new, b disappears.
	spawns = tr.Update(declare(a, c), sink)
	assert.Len(t, spawns, 1, "only the new recipe spawns")
	runAll(ctx, spawns)

	waitClosed(t, b.Cancelled(), "b was not cancelled")

	want := []uint64{subscription.Identity[string](a), subscription.Identity[string](c)}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
	got := tr.Tracked()
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	assert.Equal(t, want, got)
}

func TestUpdate_ForwardsMessagesToSink(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr := New[string]()
	sink := &recordSink{}

	runAll(ctx, tr.Update(declare(testutil.NewProbe("emitter", "one", "two")), sink))

	require.Eventually(t, func() bool {
		return len(sink.messages()) == 2
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"one", "two"}, sink.messages(), "order within one execution is preserved")
}

func TestBroadcast_ReachesConsumingExecutions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr := New[string]()
	sink := &recordSink{}

	listener := testutil.NewProbe("listener").Consuming()
	runAll(ctx, tr.Update(declare(listener, testutil.NewProbe("deaf")), sink))

	tr.Broadcast("resized")

	require.Eventually(t, func() bool {
		msgs := sink.messages()
		return len(msgs) == 1 && msgs[0] == "event:resized"
	}, 2*time.Second, 5*time.Millisecond)
}

func TestBroadcast_NeverBlocksWhenSaturated(t *testing.T) {
	tr := New(WithListenerCapacity[string](1))

	// The execution is registered but its task never scheduled, so nothing
	// drains the listener.
	_ = tr.Update(declare(testutil.NewProbe("stuck").Consuming()), &recordSink{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			tr.Broadcast(i)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a saturated listener")
	}
}

func TestBroadcast_SkipsNonConsumers(t *testing.T) {
	tr := New(WithListenerCapacity[string](1))

	// Never scheduled either; a plain recipe has no listener at all, so
	// repeated broadcasts cannot even saturate.
	_ = tr.Update(declare(testutil.NewProbe("plain")), &recordSink{})

	for i := 0; i < 10; i++ {
		tr.Broadcast(i)
	}
	assert.Equal(t, 1, tr.Len())
}

func TestClose_CancelsEverything(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr := New(WithLogger[string](slog.Default()))
	sink := &recordSink{}

	a := testutil.NewProbe("a")
	b := testutil.NewProbe("b")
	runAll(ctx, tr.Update(declare(a, b), sink))

	tr.Close()

	waitClosed(t, a.Cancelled(), "a survived Close")
	waitClosed(t, b.Cancelled(), "b survived Close")
	assert.Zero(t, tr.Len())
}
