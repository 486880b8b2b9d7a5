package harness

import (
	"fmt"
	"sort"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Verify checks a run result against the scenario's expectations.
// It returns the first violation, described with a structural diff.
func Verify(scenario *Scenario, result *Result) error {
	if len(result.Cycles) != len(scenario.Cycles) {
		return fmt.Errorf("expected %d cycles, got %d", len(scenario.Cycles), len(result.Cycles))
	}

	for i, cycle := range scenario.Cycles {
		got := result.Cycles[i]

		if got.Spawned != cycle.ExpectSpawned {
			return fmt.Errorf("cycle %d: expected %d spawned tasks, got %d", i+1, cycle.ExpectSpawned, got.Spawned)
		}

		if cycle.ExpectTracked != nil {
			if diff := diffSets(cycle.ExpectTracked, got.Tracked); diff != "" {
				return fmt.Errorf("cycle %d: tracked set mismatch (-want +got):\n%s", i+1, diff)
			}
		}

		if diff := diffSets(cycle.ExpectCancelled, got.Cancelled); diff != "" {
			return fmt.Errorf("cycle %d: cancelled set mismatch (-want +got):\n%s", i+1, diff)
		}
	}
	return nil
}

// diffSets compares two name sets ignoring order and nil-vs-empty.
func diffSets(want, got []string) string {
	w := append([]string(nil), want...)
	g := append([]string(nil), got...)
	sort.Strings(w)
	sort.Strings(g)
	return cmp.Diff(w, g, cmpopts.EquateEmpty())
}
