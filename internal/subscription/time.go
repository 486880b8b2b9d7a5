package subscription

import (
	"context"
	"time"

	"github.com/glint-ui/glint/internal/identity"
)

// Every declares a subscription producing the current time at the given
// interval. Declaring the same interval every cycle keeps one ticker alive;
// changing the interval is a new subscription.
func Every(interval time.Duration) Subscription[time.Time] {
	return FromRecipe[time.Time](everyRecipe{interval: interval})
}

type everyRecipe struct {
	interval time.Duration
}

func (e everyRecipe) Hash(h *identity.Hasher) {
	h.WriteString("time.Every")
	h.WriteDuration(e.interval)
}

func (e everyRecipe) Stream(ctx context.Context, _ <-chan Event) <-chan time.Time {
	out := make(chan time.Time)
	go func() {
		defer close(out)
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				select {
				case out <- now:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
