// Package vcs wraps the handful of git operations the CLI needs: staging
// new crates and setting local changes aside while a baseline is measured.
package vcs
