package vcs

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrStashNotFound is returned by Pop when the entry pushed by this handle is
// no longer in the stash list (popped or dropped by someone else).
var ErrStashNotFound = errors.New("stash entry not found")

// Stash is a handle on one entry pushed with Push. The entry is identified by
// its message, not its position, so pops from other invocations cannot make
// this handle restore the wrong changes.
type Stash struct {
	repo    *Repo
	message string
	empty   bool
	popped  bool
}

// Push sets aside uncommitted changes under message. When the working tree
// is clean git records nothing and the returned handle is empty.
func (g *Repo) Push(ctx context.Context, message string) (*Stash, error) {
	if _, err := g.git(ctx, false, "stash", "push", "-m", message); err != nil {
		return nil, err
	}
	ref, err := g.find(ctx, message)
	if err != nil {
		return nil, err
	}
	return &Stash{repo: g, message: message, empty: ref == ""}, nil
}

// Message returns the message the entry was pushed with.
func (s *Stash) Message() string { return s.message }

// Empty reports whether Push found nothing to stash.
func (s *Stash) Empty() bool { return s.empty }

// Pop restores the stashed changes and drops the entry. It is a no-op for an
// empty handle or one that was already popped.
func (s *Stash) Pop(ctx context.Context) error {
	if s.empty || s.popped {
		return nil
	}
	ref, err := s.repo.find(ctx, s.message)
	if err != nil {
		return err
	}
	if ref == "" {
		return fmt.Errorf("%w: %q", ErrStashNotFound, s.message)
	}
	if _, err := s.repo.git(ctx, false, "stash", "pop", ref); err != nil {
		return err
	}
	s.popped = true
	return nil
}

// find returns the stash ref (stash@{n}) whose message is message, or "" if
// there is none.
func (g *Repo) find(ctx context.Context, message string) (string, error) {
	out, err := g.git(ctx, true, "stash", "list", "--format=%gd%x00%gs")
	if err != nil {
		return "", fmt.Errorf("listing stash entries: %w", err)
	}
	return findRef(out.Stdout, message), nil
}

// findRef scans `git stash list --format=%gd%x00%gs` output. Subjects look
// like "On main: <message>" (or "WIP on main: ..." for unnamed entries).
func findRef(list, message string) string {
	for _, line := range strings.Split(list, "\n") {
		ref, subject, ok := strings.Cut(line, "\x00")
		if !ok {
			continue
		}
		if _, msg, ok := strings.Cut(subject, ": "); ok && msg == message {
			return ref
		}
	}
	return ""
}
