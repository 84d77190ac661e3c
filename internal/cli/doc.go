// Package cli defines the Cobra command tree for the tasks CLI. Each file in
// this package registers one top-level command with the root command.
// Command implementations delegate to internal packages for the work and only
// handle argument parsing, output formatting and exit codes.
package cli
