package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aoc-template/tasks/internal/runner"
	"github.com/aoc-template/tasks/internal/ui"
	"github.com/aoc-template/tasks/internal/vcs"
	"github.com/charmbracelet/log"
)

const (
	// DefaultBaseline is the baseline name used when none is given.
	DefaultBaseline = "previous"

	// DefaultBench is the cargo bench target that hosts the criterion suite.
	DefaultBench = "criterion"

	stashMessage = "Stashing for benchmarking"
)

// ErrNoTarget is returned when a benchmark target is empty.
var ErrNoTarget = errors.New("benchmark target is required")

// Stasher sets local changes aside and hands back a handle to restore them.
type Stasher interface {
	Push(ctx context.Context, message string) (*vcs.Stash, error)
}

// Workflow runs criterion benchmarks for one workspace.
type Workflow struct {
	Runner runner.Runner
	Stash  Stasher
	Dir    string            // workspace root
	Bench  string            // cargo bench target; DefaultBench when empty
	Env    map[string]string // passed to every cargo invocation (e.g. RUSTFLAGS)
	Logger *log.Logger

	// now stamps stash messages; overridden in tests.
	now func() time.Time
}

// Criterion runs the benchmark for target without touching baselines.
func (w *Workflow) Criterion(ctx context.Context, target string) error {
	return w.bench(ctx, target)
}

// SetBaseline runs the benchmark for target and saves the results as
// baseline name, replacing any previous baseline with that name.
func (w *Workflow) SetBaseline(ctx context.Context, target, name string) error {
	return w.bench(ctx, target, "--save-baseline", baselineName(name))
}

// Compare runs the benchmark for target and compares it against baseline
// name. The harness fails when the baseline was never saved.
func (w *Workflow) Compare(ctx context.Context, target, name string) error {
	return w.bench(ctx, target, "--baseline", baselineName(name))
}

// CompareByStashing measures the committed tree as the baseline and then the
// working tree against it:
//
//  1. stash local changes
//  2. SetBaseline on the clean tree
//  3. restore the stashed changes
//  4. Compare on the modified tree
//
// The first failing step aborts the sequence. Nothing is rolled back: if the
// baseline run fails, the changes stay stashed and the returned error names
// the stash entry to restore by hand.
func (w *Workflow) CompareByStashing(ctx context.Context, target, name string) error {
	if target == "" {
		return ErrNoTarget
	}
	name = baselineName(name)

	stash, err := w.Stash.Push(ctx, w.stashMessage(target))
	if err != nil {
		return fmt.Errorf("stashing local changes: %w", err)
	}
	if stash.Empty() {
		w.logger().Info("no local changes to stash; comparing the tree against itself")
	}

	if err := w.SetBaseline(ctx, target, name); err != nil {
		if !stash.Empty() {
			w.logger().Warn("local changes are still stashed", "stash", stash.Message())
			return &StrandedError{Stash: stash.Message(), Err: err}
		}
		return err
	}

	if err := stash.Pop(ctx); err != nil {
		return fmt.Errorf("restoring stashed changes: %w", err)
	}

	return w.Compare(ctx, target, name)
}

func (w *Workflow) bench(ctx context.Context, target string, extra ...string) error {
	if target == "" {
		return ErrNoTarget
	}
	args := []string{"bench", "--bench", w.benchName(), "--", target}
	args = append(args, extra...)
	args = append(args, "--verbose")

	w.logger().Debug("running benchmark", "target", target, "args", extra)
	_, err := runner.RunChecked(ctx, w.Runner, "cargo", args, runner.Options{Dir: w.Dir, Env: w.Env})
	return err
}

// stashMessage makes the entry identifiable even when other invocations push
// their own entries in between.
func (w *Workflow) stashMessage(target string) string {
	now := time.Now
	if w.now != nil {
		now = w.now
	}
	return fmt.Sprintf("%s %s (%d)", stashMessage, target, now().UnixNano())
}

func (w *Workflow) benchName() string {
	if w.Bench == "" {
		return DefaultBench
	}
	return w.Bench
}

func (w *Workflow) logger() *log.Logger {
	if w.Logger == nil {
		return ui.Discard()
	}
	return w.Logger
}

func baselineName(name string) string {
	if name == "" {
		return DefaultBaseline
	}
	return name
}
