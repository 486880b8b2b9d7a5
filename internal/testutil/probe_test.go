package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glint-ui/glint/internal/subscription"
)

func TestProbe_IdentityIsName(t *testing.T) {
	assert.Equal(t,
		subscription.Identity[string](NewProbe("a", "x")),
		subscription.Identity[string](NewProbe("a")),
		"identity depends on the name only")
	assert.NotEqual(t,
		subscription.Identity[string](NewProbe("a")),
		subscription.Identity[string](NewProbe("b")))
}

func TestProbe_EmitsThenStaysAlive(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	p := NewProbe("p", "one", "two")
	out := p.Stream(ctx, nil)

	assert.Equal(t, "one", <-out)
	assert.Equal(t, "two", <-out)

	select {
	case <-p.Cancelled():
		t.Fatal("probe should stay alive after emitting")
	case <-time.After(20 * time.Millisecond):
	}

	cancel()
	select {
	case <-p.Cancelled():
	case <-time.After(time.Second):
		t.Fatal("probe did not acknowledge cancellation")
	}
}

func TestProbe_ConsumingEchoesEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewProbe("echo").Consuming()
	require.True(t, p.ConsumesEvents())

	input := make(chan subscription.Event, 1)
	out := p.Stream(ctx, input)

	input <- "clicked"
	assert.Equal(t, "event:clicked", <-out)
}

func TestFixedTokens_Sequence(t *testing.T) {
	g := NewFixedTokens("test")
	assert.Equal(t, "test-1", g.Generate())
	assert.Equal(t, "test-2", g.Generate())
}
