package cli

import (
	"fmt"
	"os"

	"github.com/aoc-template/tasks/internal/bench"
	"github.com/aoc-template/tasks/internal/config"
	"github.com/aoc-template/tasks/internal/manifest"
	"github.com/aoc-template/tasks/internal/runner"
	"github.com/aoc-template/tasks/internal/vcs"
	"github.com/spf13/cobra"
)

// newRunner builds the process runner for a command. Children inherit
// baseEnv on top of the process environment. Tests replace it.
var newRunner = func(cmd *cobra.Command, baseEnv map[string]string) runner.Runner {
	return &runner.ExecRunner{
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
		Logger:  logger,
		BaseEnv: baseEnv,
	}
}

// workspace is everything a workflow command needs.
type workspace struct {
	Root     string
	Settings config.Settings
	Runner   runner.Runner
	Repo     *vcs.Repo
}

// openWorkspace resolves the workspace root, merges its .env and builds the
// runner.
func openWorkspace(cmd *cobra.Command) (*workspace, error) {
	root := config.Get(config.KeyRoot)
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		root, err = manifest.FindRoot(cwd)
		if err != nil {
			return nil, err
		}
	}
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("workspace root %s: %w", root, err)
	}

	if err := config.LoadProject(root); err != nil {
		return nil, err
	}
	settings := config.Resolve()
	settings.Root = root
	logger.Debug("workspace", "root", root, "rustflags", settings.RustFlags, "bench", settings.Bench)

	r := newRunner(cmd, settings.Env)
	return &workspace{
		Root:     root,
		Settings: settings,
		Runner:   r,
		Repo:     vcs.New(r, root),
	}, nil
}

func (w *workspace) workflow() *bench.Workflow {
	return &bench.Workflow{
		Runner: w.Runner,
		Stash:  w.Repo,
		Dir:    w.Root,
		Bench:  w.Settings.Bench,
		Env:    w.Settings.BuildEnv(),
		Logger: logger,
	}
}
