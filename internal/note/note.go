// Package note models a markdown document's heading outline and decides
// where content sent to a heading should be inserted.
package note

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is a single section marker in a document.
type Heading struct {
	Name  string // heading text, without the marker
	Level int    // 1-6 for ATX, 1-2 for setext
	Line  int    // 0-indexed line the heading starts on
}

// Outline is a document's headings in document order.
type Outline []Heading

// Find returns the first heading with the given name.
// Duplicate names are not disambiguated; the first match wins.
func (o Outline) Find(name string) (Heading, bool) {
	for _, h := range o {
		if h.Name == name {
			return h, true
		}
	}
	return Heading{}, false
}

// Names returns the heading names in document order.
func (o Outline) Names() []string {
	names := make([]string, len(o))
	for i, h := range o {
		names[i] = h.Name
	}
	return names
}

// ParseOutline extracts the heading outline from markdown text.
// Headings inside fenced code blocks are not headings; goldmark's parser
// handles that for us.
func ParseOutline(source string) Outline {
	src := []byte(source)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))

	var outline Outline
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Lines().Len() == 0 {
			// A bare marker with no text has no name to match on.
			return ast.WalkSkipChildren, nil
		}
		seg := h.Lines().At(0)
		outline = append(outline, Heading{
			Name:  headingText(h, src),
			Level: h.Level,
			Line:  lineAt(src, seg.Start),
		})
		return ast.WalkSkipChildren, nil
	})
	return outline
}

// headingText collects the plain text of a heading node.
func headingText(h *ast.Heading, src []byte) string {
	var sb strings.Builder
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		collectText(c, src, &sb)
	}
	return strings.TrimSpace(sb.String())
}

func collectText(n ast.Node, src []byte, sb *strings.Builder) {
	switch t := n.(type) {
	case *ast.Text:
		sb.Write(t.Segment.Value(src))
	case *ast.String:
		sb.Write(t.Value)
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			collectText(c, src, sb)
		}
	}
}

// lineAt returns the 0-indexed line containing the byte offset.
func lineAt(src []byte, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	line := 0
	for _, b := range src[:offset] {
		if b == '\n' {
			line++
		}
	}
	return line
}
