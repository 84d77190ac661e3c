// Package toolchain verifies that the external tools the CLI drives are on
// PATH and new enough: cargo (for `cargo add`) and git (for `stash push -m`).
package toolchain
