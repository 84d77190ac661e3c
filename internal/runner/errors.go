package runner

import "fmt"

// ExitError reports that an external command exited non-zero. Code is the
// child's exit status and becomes the CLI's own exit status.
type ExitError struct {
	Code    int
	Command string
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: exit status %d", e.Command, e.Code)
}
