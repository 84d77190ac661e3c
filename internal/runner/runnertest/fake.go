// Package runnertest provides a scripted runner.Runner for tests.
package runnertest

import (
	"context"
	"strings"
	"sync"

	"github.com/aoc-template/tasks/internal/runner"
)

// Call records one invocation seen by Fake.
type Call struct {
	Name string
	Args []string
	Opts runner.Options
}

// Line returns the invocation as "name arg1 arg2".
func (c Call) Line() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Response is what Fake returns for a matching invocation.
type Response struct {
	ExitCode int
	Stdout   string
	Err      error
}

// Fake records calls and answers them from Responses, matched by the
// longest prefix of Call.Line(). Unmatched calls succeed with no output.
type Fake struct {
	mu        sync.Mutex
	Calls     []Call
	Responses map[string]Response
	// OnRun, when set, is invoked before the response is chosen.
	OnRun func(c Call)
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{Responses: map[string]Response{}}
}

// On registers the response for invocations whose line starts with prefix.
func (f *Fake) On(prefix string, resp Response) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Responses[prefix] = resp
	return f
}

// Run implements runner.Runner.
func (f *Fake) Run(_ context.Context, name string, args []string, opts runner.Options) (*runner.Output, error) {
	c := Call{Name: name, Args: append([]string(nil), args...), Opts: opts}

	f.mu.Lock()
	f.Calls = append(f.Calls, c)
	hook := f.OnRun
	f.mu.Unlock()

	if hook != nil {
		hook(c)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	line := c.Line()
	best := ""
	found := false
	for prefix := range f.Responses {
		if strings.HasPrefix(line, prefix) && len(prefix) >= len(best) {
			best, found = prefix, true
		}
	}
	if !found {
		return &runner.Output{}, nil
	}
	resp := f.Responses[best]
	if resp.Err != nil {
		return &runner.Output{}, resp.Err
	}
	return &runner.Output{ExitCode: resp.ExitCode, Stdout: resp.Stdout}, nil
}

// Lines returns every recorded call as "name args...".
func (f *Fake) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		lines[i] = c.Line()
	}
	return lines
}
