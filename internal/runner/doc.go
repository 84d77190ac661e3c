// Package runner spawns the external tools the CLI drives (cargo, git). The
// Runner interface keeps command execution stubbable in tests; ExecRunner is
// the os/exec implementation that echoes each command before running it and
// streams its output to the terminal.
package runner
