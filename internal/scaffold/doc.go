// Package scaffold implements start-solve: it creates a new problemNN crate
// in the Cargo workspace, fills its sources from embedded templates, and
// registers it with the workspace manifest and the benchmark suite.
package scaffold
