package cli

import (
	"fmt"
	"strconv"

	"github.com/aoc-template/tasks/internal/puzzle"
	"github.com/aoc-template/tasks/internal/scaffold"
	"github.com/aoc-template/tasks/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(startSolveCmd)
}

var startSolveCmd = &cobra.Command{
	Use:     "start-solve PROBLEM_NUM",
	Aliases: []string{"ss"},
	Short:   "Start solving a problem by generating its crate",
	Long: `Create crate problemNN for PROBLEM_NUM: add it to the workspace members,
record its start time, generate main.rs and lib.rs, register it in the
benchmark crate and stage it with git.

If input_url is configured, the puzzle input is downloaded to src/input.txt.
Nothing happens if the crate directory already exists.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid problem number %q: must be an integer", args[0])
		}

		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}

		starter := &scaffold.Starter{
			Runner: ws.Runner,
			Repo:   ws.Repo,
			Root:   ws.Root,
			Env:    ws.Settings.BuildEnv(),
			Logger: logger,
		}
		if ws.Settings.InputURL != "" {
			fetcher, err := puzzle.NewFetcher(ws.Settings.InputURL, ws.Settings.Session, ws.Settings.UserAgent)
			if err != nil {
				return err
			}
			starter.Inputs = fetcher
		}

		result, err := starter.Start(cmd.Context(), number)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if result.Existed {
			fmt.Fprintf(out, "%s already exists.\n", result.Crate)
			return nil
		}
		for _, w := range result.Warnings {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.WarningStyle.Render("warning:"), w)
		}
		fmt.Fprintln(out, ui.SuccessStyle.Render("Created "+result.Crate))
		for _, f := range result.Files {
			fmt.Fprintln(out, ui.MutedStyle.Render("  "+result.Crate+"/"+f))
		}
		return nil
	},
}
