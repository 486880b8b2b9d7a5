package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glint-ui/glint/internal/harness"
)

// NewScenarioCommand creates the scenario command.
func NewScenarioCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario <file>",
		Short: "Execute a reconciliation scenario",
		Long: `Execute a YAML reconciliation scenario against a real tracker.

The scenario's cycles are applied in order; spawn counts and
tracked/cancelled sets are verified against the file's expectations and a
transcript of the run is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

func runScenario(cmd *cobra.Command, opts *RootOptions, path string) error {
	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return err
	}

	result, err := harness.Run(scenario)
	if err != nil {
		return fmt.Errorf("run scenario: %w", err)
	}

	if err := harness.Verify(scenario, result); err != nil {
		return fmt.Errorf("scenario %s failed: %w", scenario.Name, err)
	}

	switch opts.Format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	default:
		fmt.Fprint(cmd.OutOrStdout(), string(harness.Transcript(scenario, result)))
	}
	return nil
}
