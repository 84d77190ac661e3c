//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aoc-template/tasks/internal/runner"
	"github.com/aoc-template/tasks/internal/ui"
)

// cargoStub stands in for cargo. It appends one line per invocation to
// $CARGO_STUB_LOG with the arguments, RUSTFLAGS and the contents of
// work.txt, fakes `cargo new` and exits with $CARGO_STUB_EXIT when the
// arguments contain $CARGO_STUB_FAIL_ON.
const cargoStub = `#!/bin/sh
work=""
[ -f work.txt ] && work=$(cat work.txt)
echo "$*|$RUSTFLAGS|$work" >> "$CARGO_STUB_LOG"
if [ "$1" = "new" ]; then
	mkdir -p "$3/src"
	printf '[package]\nname = "%s"\n' "$3" > "$3/Cargo.toml"
	echo 'fn main() {}' > "$3/src/main.rs"
fi
if [ -n "$CARGO_STUB_FAIL_ON" ]; then
	case "$*" in
	*"$CARGO_STUB_FAIL_ON"*) exit "${CARGO_STUB_EXIT:-1}" ;;
	esac
fi
exit 0
`

// testEnv holds an isolated workspace with a stub cargo on PATH.
type testEnv struct {
	Root     string // git repository holding the Cargo workspace
	CargoLog string
	Runner   *runner.ExecRunner
}

// setupTestEnv creates a committed Cargo workspace in a fresh git repository
// and puts the cargo stub first on PATH.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available, skipping")
	}

	binDir := t.TempDir()
	writeFile(t, filepath.Join(binDir, "cargo"), cargoStub)
	if err := os.Chmod(filepath.Join(binDir, "cargo"), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	env := &testEnv{
		Root:     t.TempDir(),
		CargoLog: filepath.Join(t.TempDir(), "cargo.log"),
		Runner:   runner.NewExecRunner(ui.Discard()),
	}
	env.Runner.Stdout = &strings.Builder{}
	env.Runner.Stderr = &strings.Builder{}
	t.Setenv("CARGO_STUB_LOG", env.CargoLog)
	t.Setenv("CARGO_STUB_FAIL_ON", "")
	t.Setenv("HOME", t.TempDir())

	writeFile(t, filepath.Join(env.Root, "Cargo.toml"), "[workspace]\nmembers = [\"benchmark\"]\n")
	writeFile(t, filepath.Join(env.Root, "benchmark", "Cargo.toml"), "[package]\nname = \"benchmark\"\n")
	writeFile(t, filepath.Join(env.Root, "benchmark", "benches", "criterion.rs"), "benches! {\n}\n")
	writeFile(t, filepath.Join(env.Root, "benchmark", "benches", "iai.rs"), "iai_benches! {\n}\n")
	writeFile(t, filepath.Join(env.Root, "work.txt"), "committed\n")

	git(t, env.Root, "init", "-q")
	git(t, env.Root, "config", "user.email", "test@example.com")
	git(t, env.Root, "config", "user.name", "Test")
	git(t, env.Root, "add", ".")
	git(t, env.Root, "commit", "-q", "-m", "init")
	return env
}

// cargoCalls returns the lines the cargo stub logged.
func (e *testEnv) cargoCalls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.CargoLog)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return string(out)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
