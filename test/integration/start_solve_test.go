//go:build integration

package integration_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aoc-template/tasks/internal/manifest"
	"github.com/aoc-template/tasks/internal/scaffold"
	"github.com/aoc-template/tasks/internal/vcs"
)

func newStarter(env *testEnv) *scaffold.Starter {
	return &scaffold.Starter{
		Runner: env.Runner,
		Repo:   vcs.New(env.Runner, env.Root),
		Root:   env.Root,
		Env:    map[string]string{"RUSTFLAGS": "-C target-cpu=native"},
		Now:    func() time.Time { return time.Date(2026, 12, 1, 6, 0, 0, 0, time.UTC) },
	}
}

func TestStartSolve_CreatesAndStagesCrate(t *testing.T) {
	env := setupTestEnv(t)

	result, err := newStarter(env).Start(context.Background(), 1)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if result.Existed {
		t.Fatal("Existed = true for a new crate")
	}

	crate := filepath.Join(env.Root, "problem01")
	assertFileExists(t, filepath.Join(crate, "src", "main.rs"))
	assertFileContains(t, filepath.Join(crate, "src", "lib.rs"), "pub fn solve")
	assertFileContains(t, filepath.Join(env.Root, "benchmark", "benches", "criterion.rs"), "problem01,")
	assertFileContains(t, filepath.Join(env.Root, "benchmark", "benches", "iai.rs"), "problem01: problem01_solve,")

	ws, err := manifest.Load(filepath.Join(env.Root, manifest.FileName))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ws.HasMember("problem01") {
		t.Errorf("members = %v, want problem01", ws.Members())
	}
	if _, ok := ws.StartTime("problem01"); !ok {
		t.Error("start time not recorded")
	}

	staged := git(t, env.Root, "diff", "--cached", "--name-only")
	for _, f := range []string{"problem01/src/lib.rs", "problem01/src/main.rs", "problem01/Cargo.toml"} {
		if !strings.Contains(staged, f) {
			t.Errorf("%s not staged; staged:\n%s", f, staged)
		}
	}

	calls := env.cargoCalls(t)
	if len(calls) != 2 || !strings.HasPrefix(calls[0], "new --bin problem01|") ||
		!strings.HasPrefix(calls[1], "add --manifest-path benchmark/Cargo.toml --path problem01 problem01|") {
		t.Errorf("cargo calls = %q", calls)
	}
}

func TestStartSolve_ExistingCrateIsUntouched(t *testing.T) {
	env := setupTestEnv(t)
	writeFile(t, filepath.Join(env.Root, "problem02", "keep.txt"), "mine\n")
	before := readFile(t, filepath.Join(env.Root, "Cargo.toml"))

	result, err := newStarter(env).Start(context.Background(), 2)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !result.Existed {
		t.Error("Existed = false for an existing crate")
	}
	if after := readFile(t, filepath.Join(env.Root, "Cargo.toml")); after != before {
		t.Errorf("Cargo.toml changed:\n%s", after)
	}
	if calls := env.cargoCalls(t); len(calls) != 0 {
		t.Errorf("cargo calls = %q, want none", calls)
	}
}
