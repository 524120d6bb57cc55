package note

import "errors"

// ErrHeadingNotFound indicates the target heading does not exist in the
// outline. Callers must not mutate anything when they see this.
var ErrHeadingNotFound = errors.New("heading not found")

// ResolveInsertLine computes the line at which content appended under the
// named heading should be inserted.
//
// The insertion point is the start line of the very next heading of ANY
// level, or lineCount (end of document) when the target is the last heading.
// Appending before the next heading regardless of its level means content
// can land ahead of a deeper subsection rather than strictly inside the
// target's own level. That matches how section "append" behaves in the
// editors this tool mirrors; keep it unless the product decision changes.
func ResolveInsertLine(outline Outline, targetName string, lineCount int) (int, error) {
	for i, h := range outline {
		if h.Name != targetName {
			continue
		}
		if i == len(outline)-1 {
			return lineCount, nil
		}
		return outline[i+1].Line, nil
	}
	return 0, ErrHeadingNotFound
}
