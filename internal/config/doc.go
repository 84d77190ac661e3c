// Package config manages user-level settings stored at ~/.tasks/config.yaml,
// overlaid with TASKS_* environment variables and the project's .env file.
// Settings cover the project root, the RUSTFLAGS passed to cargo, the bench
// target name and the puzzle-input download (URL template, session token,
// User-Agent).
package config
