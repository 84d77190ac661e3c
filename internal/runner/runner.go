package runner

import (
	"context"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Runner executes an external command.
type Runner interface {
	// Run executes name with args. A process that starts and exits non-zero
	// is reported through Output.ExitCode, not through the error; the error
	// is reserved for spawn, IO and cancellation failures.
	Run(ctx context.Context, name string, args []string, opts Options) (*Output, error)
}

// Options holds per-invocation settings.
type Options struct {
	Dir string            // working directory (optional)
	Env map[string]string // overlay on top of the inherited environment
	// Quiet captures output without echoing the command or streaming to the
	// terminal. Used for probes such as `git stash list`.
	Quiet bool
}

// Output captures the result of a command.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Check turns a non-zero exit into an *ExitError. It passes err through
// unchanged when the command could not be run at all.
func Check(name string, args []string, out *Output, err error) error {
	if err != nil {
		return fmt.Errorf("running %s: %w", name, err)
	}
	if out.ExitCode != 0 {
		return &ExitError{Code: out.ExitCode, Command: FormatCommand(name, args)}
	}
	return nil
}

// RunChecked runs a command and applies Check to the result.
func RunChecked(ctx context.Context, r Runner, name string, args []string, opts Options) (*Output, error) {
	out, err := r.Run(ctx, name, args, opts)
	if err := Check(name, args, out, err); err != nil {
		return out, err
	}
	return out, nil
}

// FormatCommand renders name and args as a copy-pasteable shell command line.
func FormatCommand(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, a := range append([]string{name}, args...) {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		// Only unquotable input (e.g. NUL bytes) lands here.
		return fmt.Sprintf("%q", s)
	}
	return q
}
