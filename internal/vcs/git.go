package vcs

import (
	"context"

	"github.com/aoc-template/tasks/internal/runner"
)

// Repo runs git commands inside Dir.
type Repo struct {
	Runner runner.Runner
	Dir    string
}

// New returns a Repo for the working tree at dir.
func New(r runner.Runner, dir string) *Repo {
	return &Repo{Runner: r, Dir: dir}
}

// Add stages paths (`git add <paths>`).
func (g *Repo) Add(ctx context.Context, paths ...string) error {
	_, err := g.git(ctx, false, append([]string{"add"}, paths...)...)
	return err
}

func (g *Repo) git(ctx context.Context, quiet bool, args ...string) (*runner.Output, error) {
	return runner.RunChecked(ctx, g.Runner, "git", args, runner.Options{Dir: g.Dir, Quiet: quiet})
}
