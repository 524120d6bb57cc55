// Package send implements the transfer operations: copy or move a piece of
// text into a heading-delimited section of a target document.
package send

import (
	"fmt"
	"strings"

	"github.com/marcus/refile/internal/buffer"
	"github.com/marcus/refile/internal/format"
	"github.com/marcus/refile/internal/note"
	"github.com/marcus/refile/internal/vault"
)

// Service performs sends against a vault. Formatting settings are captured
// at construction; operations are otherwise stateless.
type Service struct {
	store      *vault.Store
	templates  format.Templates
	formatting bool
}

// NewService creates a send service.
func NewService(store *vault.Store, templates format.Templates, formatting bool) *Service {
	return &Service{store: store, templates: templates, formatting: formatting}
}

// Format runs the optional formatting pass on raw text.
func (s *Service) Format(raw string, ctx format.Context) string {
	return format.Apply(raw, ctx, s.templates, s.formatting)
}

// CopyToHeading inserts text under the named heading of the target
// document. The source is left alone; this is the path for clipboard sends
// and for the insert half of cross-document moves. The heading is resolved
// before anything is written, so a missing heading changes nothing.
func (s *Service) CopyToHeading(targetPath, heading, text string, ctx format.Context) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptySource
	}

	doc, err := s.store.Read(targetPath)
	if err != nil {
		return fmt.Errorf("read target: %w", err)
	}

	buf := buffer.FromText(doc.Text)
	line, err := note.ResolveInsertLine(note.ParseOutline(doc.Text), heading, buf.Len())
	if err != nil {
		return err
	}

	updated := buffer.SpliceText(doc.Text, line, s.Format(text, ctx))
	if err := s.store.Write(doc, updated); err != nil {
		return fmt.Errorf("write target: %w", err)
	}
	return nil
}

// TargetHeadings returns the heading names of the target document, in
// document order.
func (s *Service) TargetHeadings(targetPath string) ([]string, error) {
	doc, err := s.store.Read(targetPath)
	if err != nil {
		return nil, fmt.Errorf("read target: %w", err)
	}
	return note.ParseOutline(doc.Text).Names(), nil
}

// MoveWithinDoc relocates the source line of a live buffer under the named
// heading of the same buffer. Returns the line the cursor should rest on.
// The caller owns persisting the buffer afterwards.
func (s *Service) MoveWithinDoc(buf *buffer.Buffer, sourceLine int, heading string, ctx format.Context) (int, error) {
	text, ok := buf.Line(sourceLine)
	if !ok {
		return 0, fmt.Errorf("source line %d out of range", sourceLine)
	}
	if strings.TrimSpace(text) == "" {
		return 0, ErrEmptySource
	}

	insertLine, err := note.ResolveInsertLine(note.ParseOutline(buf.Text()), heading, buf.Len())
	if err != nil {
		return 0, err
	}

	cursor, err := buf.MoveLine(sourceLine, insertLine, s.Format(text, ctx))
	if err != nil {
		return 0, err
	}
	return cursor, nil
}

// MoveAcrossDocs copies the source line of a live buffer into the target
// document, then deletes it from the buffer. The target insert happens
// first; if it fails the source buffer is untouched. The caller owns
// persisting the buffer afterwards.
func (s *Service) MoveAcrossDocs(targetPath, heading string, buf *buffer.Buffer, sourceLine int, ctx format.Context) error {
	text, ok := buf.Line(sourceLine)
	if !ok {
		return fmt.Errorf("source line %d out of range", sourceLine)
	}

	if err := s.CopyToHeading(targetPath, heading, text, ctx); err != nil {
		return err
	}

	buf.DeleteLine(sourceLine)
	return nil
}
