package harness

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/glint-ui/glint/internal/subscription"
	"github.com/glint-ui/glint/internal/testutil"
	"github.com/glint-ui/glint/internal/tracker"
)

// cancelWait bounds how long the harness waits for a cancelled execution
// to acknowledge. Cancellation is cooperative, so acknowledgement is
// asynchronous but prompt.
const cancelWait = 2 * time.Second

// CycleResult captures the observable outcome of one reconciliation pass.
type CycleResult struct {
	// Declare echoes the declared names in declaration order.
	Declare []string `json:"declare"`

	// Spawned is the number of newly created tasks.
	Spawned int `json:"spawned"`

	// Tracked is the sorted set of names tracked after the pass.
	Tracked []string `json:"tracked"`

	// Cancelled is the sorted set of names whose executions acknowledged
	// cancellation during the pass.
	Cancelled []string `json:"cancelled,omitempty"`
}

// Result is the transcript of a full scenario run.
type Result struct {
	Cycles []CycleResult `json:"cycles"`
}

// nullSink discards everything the probes emit; harness scenarios assert
// on lifecycle, not message content.
type nullSink struct{}

func (nullSink) Send(ctx context.Context, msg string) bool { return true }

// Run executes the scenario's cycles against a fresh tracker.
//
// Each distinct name is backed by one probe instance so cancellation can be
// observed; identity depends only on the name, so re-declaring a name keeps
// the running execution alive exactly as a fresh equivalent instance would.
func Run(scenario *Scenario) (*Result, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr := tracker.New[string]()
	defer tr.Close()

	probes := make(map[string]*testutil.Probe)
	ids := make(map[uint64]string)

	result := &Result{}
	previous := make(map[string]struct{})

	for i, cycle := range scenario.Cycles {
		recipes := make([]subscription.Recipe[string], 0, len(cycle.Declare))
		declared := make(map[string]struct{}, len(cycle.Declare))
		for _, name := range cycle.Declare {
			p, ok := probes[name]
			if !ok {
				p = testutil.NewProbe(name)
				probes[name] = p
				ids[subscription.Identity[string](p)] = name
			}
			recipes = append(recipes, p)
			declared[name] = struct{}{}
		}

		spawns := tr.Update(recipes, nullSink{})
		for _, spawn := range spawns {
			go spawn(ctx)
		}

		var cancelled []string
		for name := range previous {
			if _, ok := declared[name]; ok {
				continue
			}
			select {
			case <-probes[name].Cancelled():
				cancelled = append(cancelled, name)
			case <-time.After(cancelWait):
				return nil, fmt.Errorf("cycle %d: execution %q did not acknowledge cancellation", i+1, name)
			}
		}
		sort.Strings(cancelled)

		tracked := make([]string, 0, tr.Len())
		for _, id := range tr.Tracked() {
			name, ok := ids[id]
			if !ok {
				return nil, fmt.Errorf("cycle %d: tracker holds unknown id %d", i+1, id)
			}
			tracked = append(tracked, name)
		}
		sort.Strings(tracked)

		result.Cycles = append(result.Cycles, CycleResult{
			Declare:   append([]string(nil), cycle.Declare...),
			Spawned:   len(spawns),
			Tracked:   tracked,
			Cancelled: cancelled,
		})

		previous = declared
	}

	return result, nil
}
