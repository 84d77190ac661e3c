package cli

import (
	"github.com/aoc-template/tasks/internal/bench"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(setBaselineCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(compareByStashingCmd)
	rootCmd.AddCommand(criterionCmd)
}

var setBaselineCmd = &cobra.Command{
	Use:     "set-baseline DAY [NAME]",
	Aliases: []string{"sb"},
	Short:   "Run a criterion benchmark, setting its results as the new baseline",
	Long: `Run the criterion benchmark for DAY and save the results as baseline NAME
(default "previous"), replacing any earlier baseline with that name.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		return ws.workflow().SetBaseline(cmd.Context(), args[0], baselineArg(args))
	},
}

var compareCmd = &cobra.Command{
	Use:     "compare DAY [NAME]",
	Aliases: []string{"cmp"},
	Short:   "Run a criterion benchmark, comparing its results to the saved baseline",
	Long: `Run the criterion benchmark for DAY and compare it against baseline NAME
(default "previous"). Fails if that baseline was never saved.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		return ws.workflow().Compare(cmd.Context(), args[0], baselineArg(args))
	},
}

var compareByStashingCmd = &cobra.Command{
	Use:     "compare-by-stashing DAY [NAME]",
	Aliases: []string{"cmp-stash"},
	Short:   "Stash the current changes, set the baseline and then compare the new changes",
	Long: `Measure uncommitted changes against the committed tree:

  1. stash local changes
  2. set-baseline DAY NAME on the clean tree
  3. restore the stashed changes
  4. compare DAY NAME

The first failing step stops the sequence. If the baseline run fails, the
changes stay stashed and must be restored with 'git stash pop'.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		return ws.workflow().CompareByStashing(cmd.Context(), args[0], baselineArg(args))
	},
}

var criterionCmd = &cobra.Command{
	Use:   "criterion DAY",
	Short: "Run a criterion benchmark, without caring about baselines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		return ws.workflow().Criterion(cmd.Context(), args[0])
	},
}

func baselineArg(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return bench.DefaultBaseline
}
