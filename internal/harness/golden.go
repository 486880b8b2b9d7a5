package harness

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Transcript renders a run as a stable text transcript. Declared names keep
// declaration order; tracked and cancelled sets are sorted, so the output
// is deterministic across runs and suitable for golden comparison.
func Transcript(scenario *Scenario, result *Result) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "scenario: %s\n", scenario.Name)
	for i, c := range result.Cycles {
		fmt.Fprintf(&buf, "cycle %d: declare=[%s] spawned=%d tracked=[%s] cancelled=[%s]\n",
			i+1,
			strings.Join(c.Declare, " "),
			c.Spawned,
			strings.Join(c.Tracked, " "),
			strings.Join(c.Cancelled, " "),
		)
	}
	return buf.Bytes()
}

// RunWithGolden loads a scenario, executes it, verifies expectations and
// compares the transcript against testdata/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, path string) {
	t.Helper()

	scenario, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}

	result, err := Run(scenario)
	if err != nil {
		t.Fatalf("run scenario: %v", err)
	}

	if err := Verify(scenario, result); err != nil {
		t.Fatalf("verify scenario: %v", err)
	}

	g := goldie.New(t)
	g.Assert(t, scenario.Name, Transcript(scenario, result))
}
