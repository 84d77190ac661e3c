package bench

import "fmt"

// StrandedError is returned by CompareByStashing when the baseline run fails
// after local changes were stashed. The changes remain in the stash under
// the message in Stash.
type StrandedError struct {
	Stash string
	Err   error
}

func (e *StrandedError) Error() string {
	return fmt.Sprintf("%v (local changes left in stash %q; restore them with `git stash pop`)", e.Err, e.Stash)
}

func (e *StrandedError) Unwrap() error { return e.Err }
