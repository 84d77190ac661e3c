package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func TestFormatCommand(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
		args []string
		want string
	}{
		{
			name: "plain words",
			cmd:  "cargo",
			args: []string{"bench", "--bench", "criterion", "--", "day05", "--verbose"},
			want: "cargo bench --bench criterion -- day05 --verbose",
		},
		{
			name: "argument with spaces is quoted",
			cmd:  "git",
			args: []string{"stash", "push", "-m", "Stashing for benchmarking"},
			want: "git stash push -m 'Stashing for benchmarking'",
		},
		{
			name: "no args",
			cmd:  "cargo",
			want: "cargo",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCommand(tt.cmd, tt.args); got != tt.want {
				t.Errorf("FormatCommand() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	if err := Check("cargo", nil, &Output{ExitCode: 0}, nil); err != nil {
		t.Errorf("Check(exit 0) = %v, want nil", err)
	}

	err := Check("cargo", []string{"bench"}, &Output{ExitCode: 101}, nil)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Check(exit 101) = %v, want *ExitError", err)
	}
	if exitErr.Code != 101 {
		t.Errorf("Code = %d, want 101", exitErr.Code)
	}
	if exitErr.Command != "cargo bench" {
		t.Errorf("Command = %q, want %q", exitErr.Command, "cargo bench")
	}

	spawnErr := errors.New("executable file not found")
	err = Check("cargo", nil, &Output{}, spawnErr)
	if !errors.Is(err, spawnErr) {
		t.Errorf("Check(spawn error) = %v, want wrapped %v", err, spawnErr)
	}
	if errors.As(err, &exitErr) {
		t.Error("spawn failures must not be reported as *ExitError")
	}
}

func TestSetEnv(t *testing.T) {
	tests := []struct {
		name     string
		env      []string
		key      string
		value    string
		expected []string
	}{
		{
			name:     "add new variable",
			env:      []string{"FOO=bar"},
			key:      "RUSTFLAGS",
			value:    "-C target-cpu=native",
			expected: []string{"FOO=bar", "RUSTFLAGS=-C target-cpu=native"},
		},
		{
			name:     "replace existing variable",
			env:      []string{"FOO=bar", "RUSTFLAGS=-O"},
			key:      "RUSTFLAGS",
			value:    "-C target-cpu=native",
			expected: []string{"FOO=bar", "RUSTFLAGS=-C target-cpu=native"},
		},
		{
			name:     "add to empty env",
			env:      nil,
			key:      "KEY",
			value:    "val",
			expected: []string{"KEY=val"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := setEnv(tt.env, tt.key, tt.value)
			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d entries, got %d: %v", len(tt.expected), len(result), result)
			}
			for i, e := range tt.expected {
				if result[i] != e {
					t.Errorf("env[%d] = %q, want %q", i, result[i], e)
				}
			}
		})
	}
}

func TestBuildEnv_DoesNotMutateBase(t *testing.T) {
	base := []string{"RUSTFLAGS=-O"}
	env := buildEnv(base, map[string]string{"RUSTFLAGS": "-C target-cpu=native"})
	if base[0] != "RUSTFLAGS=-O" {
		t.Errorf("base mutated: %v", base)
	}
	if env[0] != "RUSTFLAGS=-C target-cpu=native" {
		t.Errorf("env[0] = %q", env[0])
	}
}

func TestEchoLine(t *testing.T) {
	line := echoLine("cargo", []string{"bench"}, map[string]string{"RUSTFLAGS": "-C target-cpu=native"})
	if !strings.Contains(line, "cargo bench") {
		t.Errorf("echo line missing command: %q", line)
	}
	if !strings.Contains(line, "RUSTFLAGS='-C target-cpu=native'") {
		t.Errorf("echo line missing env overlay: %q", line)
	}

	plain := echoLine("git", []string{"add", "problem01"}, nil)
	if strings.Contains(plain, "w/ env") {
		t.Errorf("echo line without overlay should not mention env: %q", plain)
	}
}

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping")
	}
}

func TestExecRunner_ExitCodes(t *testing.T) {
	requireSh(t)

	tests := []struct {
		name   string
		script string
		want   int
	}{
		{"exit 0", "exit 0", 0},
		{"exit 1", "exit 1", 1},
		{"exit 42", "exit 42", 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			r := &ExecRunner{Stdout: &stdout, Stderr: &stderr}
			out, err := r.Run(context.Background(), "sh", []string{"-c", tt.script}, Options{})
			if err != nil {
				t.Fatalf("Run() error: %v (non-zero exit should not be an error)", err)
			}
			if out.ExitCode != tt.want {
				t.Errorf("ExitCode = %d, want %d", out.ExitCode, tt.want)
			}
		})
	}
}

func TestExecRunner_StreamsAndEchoes(t *testing.T) {
	requireSh(t)

	var stdout, stderr bytes.Buffer
	r := &ExecRunner{Stdout: &stdout, Stderr: &stderr}
	out, err := r.Run(context.Background(), "sh", []string{"-c", "echo hello; echo oops >&2"}, Options{})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !strings.Contains(stdout.String(), "sh -c") {
		t.Errorf("stdout missing echoed command: %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "hello") {
		t.Errorf("stdout not streamed: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "oops") {
		t.Errorf("stderr not streamed: %q", stderr.String())
	}
	if strings.TrimSpace(out.Stdout) != "hello" {
		t.Errorf("captured stdout = %q, want %q", out.Stdout, "hello")
	}
}

func TestExecRunner_QuietCapturesOnly(t *testing.T) {
	requireSh(t)

	var stdout, stderr bytes.Buffer
	r := &ExecRunner{Stdout: &stdout, Stderr: &stderr}
	out, err := r.Run(context.Background(), "sh", []string{"-c", "echo probe"}, Options{Quiet: true})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if stdout.Len() != 0 || stderr.Len() != 0 {
		t.Errorf("quiet run wrote to terminal: stdout=%q stderr=%q", stdout.String(), stderr.String())
	}
	if strings.TrimSpace(out.Stdout) != "probe" {
		t.Errorf("captured stdout = %q, want %q", out.Stdout, "probe")
	}
}

func TestExecRunner_EnvOverlay(t *testing.T) {
	requireSh(t)
	t.Setenv("RUSTFLAGS", "-O")

	var stdout bytes.Buffer
	r := &ExecRunner{Stdout: &stdout, Stderr: &stdout}
	out, err := r.Run(context.Background(), "sh", []string{"-c", `printf %s "$RUSTFLAGS"`}, Options{
		Env:   map[string]string{"RUSTFLAGS": "-C target-cpu=native"},
		Quiet: true,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out.Stdout != "-C target-cpu=native" {
		t.Errorf("child saw RUSTFLAGS=%q, want overlay value", out.Stdout)
	}
}

func TestExecRunner_BaseEnv(t *testing.T) {
	requireSh(t)

	var stdout bytes.Buffer
	r := &ExecRunner{
		Stdout:  &stdout,
		Stderr:  &stdout,
		BaseEnv: map[string]string{"CARGO_TARGET_DIR": "/tmp/target", "SESSION": "secret", "RUSTFLAGS": "-g"},
	}
	out, err := r.Run(context.Background(), "sh", []string{"-c", `printf '%s|%s' "$CARGO_TARGET_DIR" "$RUSTFLAGS"`}, Options{
		Env: map[string]string{"RUSTFLAGS": "-C target-cpu=native"},
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out.Stdout != "/tmp/target|-C target-cpu=native" {
		t.Errorf("child saw %q, want base env with the overlay on top", out.Stdout)
	}
	if strings.Contains(stdout.String(), "secret") || strings.Contains(stdout.String(), "CARGO_TARGET_DIR") {
		t.Errorf("base env leaked into the echo: %q", stdout.String())
	}
}

func TestExecRunner_Dir(t *testing.T) {
	requireSh(t)

	dir := t.TempDir()
	r := &ExecRunner{}
	out, err := r.Run(context.Background(), "sh", []string{"-c", "pwd -P"}, Options{Dir: dir, Quiet: true})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out.Stdout), strings.TrimPrefix(dir, "/private")) {
		t.Errorf("pwd = %q, want %q", out.Stdout, dir)
	}
}

func TestExecRunner_MissingBinary(t *testing.T) {
	r := &ExecRunner{}
	_, err := r.Run(context.Background(), "definitely-not-a-real-binary-xyz", nil, Options{Quiet: true})
	if err == nil {
		t.Fatal("expected error for missing binary, got nil")
	}
}

func TestExecRunner_Canceled(t *testing.T) {
	requireSh(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &ExecRunner{}
	_, err := r.Run(ctx, "sh", []string{"-c", "sleep 5"}, Options{Quiet: true})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() with canceled ctx = %v, want context.Canceled", err)
	}
}
