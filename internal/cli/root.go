package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/aoc-template/tasks/internal/bench"
	"github.com/aoc-template/tasks/internal/branding"
	"github.com/aoc-template/tasks/internal/config"
	"github.com/aoc-template/tasks/internal/runner"
	"github.com/aoc-template/tasks/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose  bool
	rootFlag string

	logger = ui.Discard()
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds problem crates in the Cargo workspace and runs the
criterion benchmark suite, saving and comparing named baselines.

Every command runs relative to the workspace root: the --root flag, the
"root" setting, or the nearest parent directory whose Cargo.toml has a
[workspace] table.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = ui.NewLogger(cmd.ErrOrStderr(), verbose)
		if err := viper.BindPFlag(config.KeyRoot, cmd.Flags().Lookup("root")); err != nil {
			return fmt.Errorf("binding --root: %w", err)
		}
		config.Load()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Workspace root (default: nearest Cargo workspace)")
}

// Execute runs the root command with build info injected via ldflags. An
// interrupt cancels the running command, kills its subprocess and ends the
// run cleanly.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return executeContext(ctx)
}

// executeContext runs the root command under ctx. Cancellation of ctx means
// the user interrupted the run.
func executeContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if ctx.Err() != nil {
		fmt.Fprintln(rootCmd.OutOrStdout(), "Bye!")
		return nil
	}
	if err != nil {
		report(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr(), err)
	}
	return err
}

// ExitCode maps an error returned by Execute to a process exit status: the
// failing subprocess's own status, or 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) && exitErr.Code != 0 {
		return exitErr.Code
	}
	return 1
}

// report prints err the way the user expects for its kind.
func report(stdout, stderr io.Writer, err error) {
	var stranded *bench.StrandedError
	if errors.As(err, &stranded) {
		fmt.Fprintln(stderr, ui.WarningStyle.Render(fmt.Sprintf(
			"Local changes are still stashed as %q. Restore them with `git stash pop`.", stranded.Stash)))
	}

	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(stdout, ui.FailureStyle.Render("Failed."))
		logger.Debug("subprocess failed", "cmd", exitErr.Command, "code", exitErr.Code)
		return
	}
	fmt.Fprintln(stderr, ui.FailureStyle.Render("Error:"), err)
}
