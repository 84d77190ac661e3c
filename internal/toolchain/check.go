package toolchain

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/aoc-template/tasks/internal/runner"
	"github.com/aoc-template/tasks/internal/ui"
)

// Tool describes one external dependency.
type Tool struct {
	Name       string
	MinVersion string
	Purpose    string
}

// Required lists the tools the CLI invokes.
var Required = []Tool{
	{Name: "cargo", MinVersion: "1.62.0", Purpose: "benchmarks and `cargo add`"},
	{Name: "git", MinVersion: "2.13.0", Purpose: "`git stash push -m`"},
}

// Status is the outcome of checking one tool.
type Status struct {
	Tool    Tool
	Path    string
	Version string
	OK      bool
	Problem string
}

// Checker runs the tool checks.
type Checker struct {
	Runner   runner.Runner
	LookPath func(string) (string, error)
}

// NewChecker returns a Checker resolving binaries with exec.LookPath.
func NewChecker(r runner.Runner) *Checker {
	return &Checker{Runner: r, LookPath: exec.LookPath}
}

// Check inspects every tool in tools.
func (c *Checker) Check(ctx context.Context, tools []Tool) []Status {
	statuses := make([]Status, 0, len(tools))
	for _, tool := range tools {
		statuses = append(statuses, c.checkOne(ctx, tool))
	}
	return statuses
}

func (c *Checker) checkOne(ctx context.Context, tool Tool) Status {
	st := Status{Tool: tool}

	path, err := c.LookPath(tool.Name)
	if err != nil {
		st.Problem = "not found on PATH"
		return st
	}
	st.Path = path

	out, err := runner.RunChecked(ctx, c.Runner, tool.Name, []string{"--version"}, runner.Options{Quiet: true})
	if err != nil {
		st.Problem = fmt.Sprintf("running --version: %v", err)
		return st
	}

	v, err := ParseVersion(out.Stdout)
	if err != nil {
		st.Problem = err.Error()
		return st
	}
	st.Version = v.String()

	ok, err := AtLeast(v, tool.MinVersion)
	if err != nil {
		st.Problem = err.Error()
		return st
	}
	if !ok {
		st.Problem = fmt.Sprintf("version %s is older than %s (needed for %s)", v, tool.MinVersion, tool.Purpose)
		return st
	}
	st.OK = true
	return st
}

// AllOK reports whether every status passed.
func AllOK(statuses []Status) bool {
	for _, st := range statuses {
		if !st.OK {
			return false
		}
	}
	return true
}

// Print writes one line per status.
func Print(w io.Writer, statuses []Status) {
	for _, st := range statuses {
		if st.OK {
			fmt.Fprintf(w, "%s %s %s %s\n",
				ui.SuccessStyle.Render("✓"),
				ui.CmdStyle.Render(st.Tool.Name),
				st.Version,
				ui.MutedStyle.Render("("+st.Path+")"))
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n",
			ui.FailureStyle.Render("✗"),
			ui.CmdStyle.Render(st.Tool.Name),
			st.Problem)
	}
}
