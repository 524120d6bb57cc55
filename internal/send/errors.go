package send

import (
	"errors"

	"github.com/marcus/refile/internal/note"
	"github.com/marcus/refile/internal/target"
)

// The send error taxonomy. Every failure is recoverable: it aborts the one
// triggering operation, is surfaced as a toast, and leaves all state
// (buffers, files, the target lock) untouched.
var (
	// ErrHeadingNotFound: the chosen heading is not in the target's outline.
	ErrHeadingNotFound = note.ErrHeadingNotFound

	// ErrEmptySource: the line, selection or clipboard had nothing to send.
	ErrEmptySource = errors.New("nothing to send")

	// ErrNoTarget: no locked target and no active document.
	ErrNoTarget = target.ErrNoTarget

	// ErrInvalidTarget: the resolved target is not a markdown document.
	ErrInvalidTarget = target.ErrInvalidTarget
)
