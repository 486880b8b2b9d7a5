// Package testutil provides deterministic doubles for runtime and tracker
// tests: name-identified probe recipes and a fixed token generator.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/glint-ui/glint/internal/identity"
	"github.com/glint-ui/glint/internal/subscription"
)

// Probe is a string-emitting recipe whose identity is its name: two probes
// with the same name are the same subscription, regardless of instance.
//
// A probe emits its configured values, then stays alive until its execution
// is cancelled, at which point Cancelled is closed. Probes built with
// Consuming echo every broadcast event as "event:<value>".
type Probe struct {
	name      string
	emits     []string
	consumes  bool
	once      sync.Once
	cancelled chan struct{}
}

// NewProbe creates a probe that emits the given values in order.
func NewProbe(name string, emits ...string) *Probe {
	return &Probe{
		name:      name,
		emits:     emits,
		cancelled: make(chan struct{}),
	}
}

// Consuming opts the probe into the runtime event feed.
func (p *Probe) Consuming() *Probe {
	p.consumes = true
	return p
}

// Cancelled is closed when the probe's execution winds down.
func (p *Probe) Cancelled() <-chan struct{} {
	return p.cancelled
}

func (p *Probe) Hash(h *identity.Hasher) {
	h.WriteString("testutil.Probe")
	h.WriteString(p.name)
}

func (p *Probe) ConsumesEvents() bool {
	return p.consumes
}

func (p *Probe) Stream(ctx context.Context, input <-chan subscription.Event) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		defer p.once.Do(func() { close(p.cancelled) })

		for _, v := range p.emits {
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}

		// Stay alive until cancelled; echo the event feed if subscribed.
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-input:
				select {
				case out <- fmt.Sprintf("event:%v", ev):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
