package scaffold

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aoc-template/tasks/internal/manifest"
	"github.com/aoc-template/tasks/internal/runner"
	"github.com/aoc-template/tasks/internal/ui"
	"github.com/aoc-template/tasks/internal/vcs"
	"github.com/charmbracelet/log"
)

// Paths inside the workspace that start-solve edits.
const (
	BenchmarkManifest = "benchmark/Cargo.toml"
	CriterionBench    = "benchmark/benches/criterion.rs"
	IaiBench          = "benchmark/benches/iai.rs"
	InputFile         = "src/input.txt"
)

// InputFetcher downloads the puzzle input for a problem.
type InputFetcher interface {
	Fetch(ctx context.Context, number int) ([]byte, error)
}

// Starter creates new problem crates in the workspace at Root.
type Starter struct {
	Runner runner.Runner
	Repo   *vcs.Repo
	Root   string
	Env    map[string]string // passed to cargo invocations
	Inputs InputFetcher      // optional
	Logger *log.Logger
	Now    func() time.Time
}

// Result holds the outcome of Start.
type Result struct {
	Crate    string
	Dir      string
	Existed  bool     // the crate directory was already there; nothing changed
	Files    []string // files written, relative to Dir
	Warnings []string
}

// CrateName returns the crate name for a problem number ("problem04").
func CrateName(number int) string {
	return fmt.Sprintf("problem%02d", number)
}

// Start scaffolds problem number. If the crate directory already exists it
// returns with Result.Existed set and touches nothing. The first failing
// command aborts the sequence; earlier steps are not undone.
func (s *Starter) Start(ctx context.Context, number int) (*Result, error) {
	if number < 0 {
		return nil, fmt.Errorf("problem number must not be negative, got %d", number)
	}
	crate := CrateName(number)
	result := &Result{Crate: crate, Dir: filepath.Join(s.Root, crate)}

	if _, err := os.Stat(result.Dir); err == nil {
		result.Existed = true
		return result, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking %s: %w", result.Dir, err)
	}

	if err := s.register(crate); err != nil {
		return nil, err
	}

	if err := s.cargo(ctx, "new", "--bin", crate); err != nil {
		return nil, err
	}
	if err := s.cargo(ctx, "add", "--manifest-path", BenchmarkManifest, "--path", crate, crate); err != nil {
		return nil, err
	}

	files, err := WriteSources(result.Dir, Data{Crate: crate, Number: number})
	if err != nil {
		return nil, err
	}
	result.Files = files

	benchLines := []struct{ path, line string }{
		{CriterionBench, fmt.Sprintf("    %s,", crate)},
		{IaiBench, fmt.Sprintf("    %s: %s_solve,", crate, crate)},
	}
	for _, b := range benchLines {
		path := filepath.Join(s.Root, b.path)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s not found; add %q by hand", b.path, b.line))
			continue
		}
		if err := AddLine(path, b.line); err != nil {
			return nil, err
		}
		s.logger().Debug("registered crate in bench suite", "file", b.path)
	}

	if s.Inputs != nil {
		data, err := s.Inputs.Fetch(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("downloading input for %s: %w", crate, err)
		}
		path := filepath.Join(result.Dir, InputFile)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		result.Files = append(result.Files, InputFile)
	}

	if err := s.Repo.Add(ctx, crate); err != nil {
		return nil, err
	}
	return result, nil
}

// register adds crate to the workspace members and stamps its start time.
func (s *Starter) register(crate string) error {
	ws, err := manifest.Load(filepath.Join(s.Root, manifest.FileName))
	if err != nil {
		return err
	}
	if !ws.AddMember(crate) {
		s.logger().Debug("crate already listed in workspace members", "crate", crate)
	}
	ws.SetStartTime(crate, s.now())
	if err := ws.Save(); err != nil {
		return err
	}
	return nil
}

func (s *Starter) cargo(ctx context.Context, args ...string) error {
	_, err := runner.RunChecked(ctx, s.Runner, "cargo", args, runner.Options{Dir: s.Root, Env: s.Env})
	return err
}

func (s *Starter) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Starter) logger() *log.Logger {
	if s.Logger == nil {
		return ui.Discard()
	}
	return s.Logger
}
