// Package bench drives the criterion benchmark harness through cargo. It
// saves and compares named baselines, and can measure uncommitted changes
// against the committed tree by stashing them for the "before" run.
//
// Baselines are stored by criterion itself; this package only tells it which
// name to save under or compare against.
package bench
