package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/aoc-template/tasks/internal/manifest"
	"github.com/aoc-template/tasks/internal/toolchain"
	"github.com/aoc-template/tasks/internal/ui"
	"github.com/spf13/cobra"
)

var errDoctorFailed = errors.New("doctor found problems")

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the toolchain and the workspace",
	Long: `Verify that cargo and git are on PATH and recent enough, and that the
workspace Cargo.toml can be found and is valid.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Toolchain:")
		statuses := toolchain.NewChecker(newRunner(cmd, nil)).Check(cmd.Context(), toolchain.Required)
		toolchain.Print(out, statuses)
		ok := toolchain.AllOK(statuses)

		fmt.Fprintln(out, "\nWorkspace:")
		if !checkWorkspace(cmd) {
			ok = false
		}

		if !ok {
			return errDoctorFailed
		}
		fmt.Fprintln(out, "\n"+ui.SuccessStyle.Render("All checks passed."))
		return nil
	},
}

// checkWorkspace prints the workspace root and manifest validity.
func checkWorkspace(cmd *cobra.Command) bool {
	out := cmd.OutOrStdout()

	ws, err := openWorkspace(cmd)
	if err != nil {
		fmt.Fprintf(out, "  %s %v\n", ui.FailureStyle.Render("✗"), err)
		return false
	}
	fmt.Fprintf(out, "  %s root %s\n", ui.SuccessStyle.Render("✓"), ws.Root)

	path := filepath.Join(ws.Root, manifest.FileName)
	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(out, "  %s %v\n", ui.FailureStyle.Render("✗"), err)
		return false
	}
	if !result.Valid {
		fmt.Fprintf(out, "  %s %s: %s\n", ui.FailureStyle.Render("✗"), manifest.FileName, result.String())
		return false
	}
	fmt.Fprintf(out, "  %s %s is valid\n", ui.SuccessStyle.Render("✓"), manifest.FileName)
	return true
}
