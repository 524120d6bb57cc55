// Package target decides which document a send operation acts on.
package target

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	// ErrNoTarget means there is neither a locked target nor an active
	// document to fall back to.
	ErrNoTarget = errors.New("no target file")

	// ErrInvalidTarget means a target path resolved but is not a markdown
	// document.
	ErrInvalidTarget = errors.New("target is not a markdown file")
)

// Resolve picks the destination document for a send: a locked target path
// overrides the active document; with no lock the active document is the
// target. The lock is a user-set pin and survives switching documents.
func Resolve(lockedPath, activePath string) (string, error) {
	path := lockedPath
	if path == "" {
		path = activePath
	}
	if path == "" {
		return "", ErrNoTarget
	}
	if !IsMarkdown(path) {
		return "", ErrInvalidTarget
	}
	return path, nil
}

// IsMarkdown reports whether the path names a markdown document.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
