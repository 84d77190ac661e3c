// Package manifest reads and edits the Cargo workspace manifest at the
// project root. It tracks the ordered list of workspace members and the
// per-crate metadata table (start_time) that start-solve records, and
// validates the decoded document against an embedded JSON Schema before any
// edit is made.
package manifest
