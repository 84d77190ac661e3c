package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/aoc-template/tasks/internal/ui"
	"github.com/charmbracelet/log"
)

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger
	// BaseEnv is added to the inherited environment of every command without
	// being echoed. Options.Env is applied on top of it.
	BaseEnv map[string]string
}

// NewExecRunner returns an ExecRunner writing to the process's stdio.
func NewExecRunner(logger *log.Logger) *ExecRunner {
	return &ExecRunner{Logger: logger}
}

// Run echoes the command as `$ cmd args (w/ env K=V)`, then executes it,
// streaming stdout/stderr to the configured writers while capturing both.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string, opts Options) (*Output, error) {
	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	logger := r.Logger
	if logger == nil {
		logger = ui.Discard()
	}

	if !opts.Quiet {
		fmt.Fprintln(stdout, echoLine(name, args, opts.Env))
	}
	logger.Debug("spawning", "cmd", name, "args", args, "dir", opts.Dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = opts.Dir
	cmd.Env = buildEnv(buildEnv(os.Environ(), r.BaseEnv), opts.Env)

	var stdoutBuf, stderrBuf bytes.Buffer
	if opts.Quiet {
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf
	} else {
		cmd.Stdin = os.Stdin
		cmd.Stdout = io.MultiWriter(stdout, &stdoutBuf)
		cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)
	}

	err := cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return output, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			logger.Debug("exited", "cmd", name, "code", output.ExitCode)
			return output, nil
		}
		return output, fmt.Errorf("executing %s: %w", name, err)
	}

	return output, nil
}

// echoLine renders the line printed before a command runs.
func echoLine(name string, args []string, env map[string]string) string {
	line := ui.PromptStyle.Render("$") + " " + FormatCommand(name, args)
	if len(env) == 0 {
		return line
	}
	pairs := make([]string, 0, len(env))
	for _, k := range slices.Sorted(maps.Keys(env)) {
		pairs = append(pairs, k+"="+quote(env[k]))
	}
	return line + " " + ui.OptionsStyle.Render("(w/ env "+strings.Join(pairs, " ")+")")
}

// buildEnv returns base with every overlay key set, replacing existing entries.
func buildEnv(base []string, overlay map[string]string) []string {
	env := slices.Clone(base)
	for _, k := range slices.Sorted(maps.Keys(overlay)) {
		env = setEnv(env, k, overlay[k])
	}
	return env
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
