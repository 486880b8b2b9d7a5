// Package harness provides conformance testing for the reconciliation
// engine.
//
// Scenarios are YAML files describing a sequence of update cycles: the
// recipe names declared each cycle and the expected spawn/track/cancel
// outcome. The harness executes the
// cycles against a real tracker with probe recipes, verifies expectations
// with structural diffs, and supports golden transcript comparison.
//
// # Scenario format
//
//	name: swap
//	description: "what this scenario validates"
//	cycles:
//	  - declare: [tick-a, tick-b]
//	    expect_spawned: 2
//	    expect_tracked: [tick-a, tick-b]
//	  - declare: [tick-a, probe-c]
//	    expect_spawned: 1
//	    expect_tracked: [tick-a, probe-c]
//	    expect_cancelled: [tick-b]
//
// Recipe names are identities: declaring the same name across cycles keeps
// one execution alive.
package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario.
type Scenario struct {
	// Name uniquely identifies the scenario; it is also the golden file name.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description,omitempty"`

	// Cycles are executed in order against a single tracker.
	Cycles []Cycle `yaml:"cycles"`
}

// Cycle is one reconciliation pass.
type Cycle struct {
	// Declare lists the recipe names declared this cycle. An empty list is
	// valid and cancels everything.
	Declare []string `yaml:"declare"`

	// ExpectSpawned is the number of newly created tasks this cycle.
	ExpectSpawned int `yaml:"expect_spawned"`

	// ExpectTracked is the full set of names tracked after the cycle.
	// Order does not matter. If omitted, the tracked set is not checked.
	ExpectTracked []string `yaml:"expect_tracked,omitempty"`

	// ExpectCancelled lists names whose executions must have been
	// cancelled by this cycle. Omitted means none.
	ExpectCancelled []string `yaml:"expect_cancelled,omitempty"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if len(s.Cycles) == 0 {
		return fmt.Errorf("scenario needs at least one cycle")
	}
	for i, c := range s.Cycles {
		seen := make(map[string]struct{}, len(c.Declare))
		for _, name := range c.Declare {
			if name == "" {
				return fmt.Errorf("cycle %d: empty recipe name", i+1)
			}
			seen[name] = struct{}{}
		}
		if len(seen) != len(c.Declare) {
			return fmt.Errorf("cycle %d: duplicate recipe names", i+1)
		}
	}
	return nil
}
