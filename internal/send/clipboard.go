package send

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/marcus/refile/internal/format"
)

// ClipboardText reads the system clipboard. Whitespace-only content is an
// ErrEmptySource; the text is otherwise returned verbatim.
func ClipboardText() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptySource
	}
	return text, nil
}

// ClipboardContext classifies clipboard content for the formatting pass.
// A bare URL is a web capture; anything else has no source context, so any
// source placeholders in the template stay verbatim.
func ClipboardContext(text string) format.Context {
	trimmed := strings.TrimSpace(text)
	if isURL(trimmed) {
		return format.Context{Kind: format.KindWeb, URL: trimmed}
	}
	return format.Context{Kind: format.KindDocument}
}

func isURL(s string) bool {
	if strings.ContainsAny(s, " \t\n") {
		return false
	}
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
