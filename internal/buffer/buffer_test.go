package buffer

import (
	"errors"
	"reflect"
	"testing"
)

func TestFromText_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"single line no newline", "hello"},
		{"single line with newline", "hello\n"},
		{"multi line", "a\nb\nc\n"},
		{"multi line no trailing", "a\nb\nc"},
		{"blank lines", "a\n\n\nb\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromText(tt.text).Text(); got != tt.text {
				t.Errorf("round trip: got %q, want %q", got, tt.text)
			}
		})
	}
}

func TestInsertLine(t *testing.T) {
	tests := []struct {
		name  string
		start []string
		at    int
		text  string
		want  []string
	}{
		{"front", []string{"a", "b"}, 0, "x", []string{"x", "a", "b"}},
		{"middle", []string{"a", "b"}, 1, "x", []string{"a", "x", "b"}},
		{"end", []string{"a", "b"}, 2, "x", []string{"a", "b", "x"}},
		{"past end clamps to append", []string{"a", "b"}, 9, "x", []string{"a", "b", "x"}},
		{"negative clamps to front", []string{"a"}, -3, "x", []string{"x", "a"}},
		{"into empty", nil, 0, "x", []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := FromLines(tt.start)
			before := b.Len()
			b.InsertLine(tt.at, tt.text)
			if b.Len() != before+1 {
				t.Errorf("insert should grow by exactly one line, got %d -> %d", before, b.Len())
			}
			if got := b.Lines(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeleteLine(t *testing.T) {
	b := FromLines([]string{"a", "b", "c"})

	if !b.DeleteLine(1) {
		t.Fatal("delete of valid line should succeed")
	}
	if got := b.Lines(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("got %v", got)
	}

	if b.DeleteLine(5) {
		t.Error("delete past end should be a no-op")
	}
	if b.DeleteLine(-1) {
		t.Error("delete of negative index should be a no-op")
	}
	if b.Len() != 2 {
		t.Errorf("no-op deletes must not change length, got %d", b.Len())
	}
}

func TestMoveLine_Up(t *testing.T) {
	// Moving B under H1: insert happens first, then the shifted source
	// line is deleted.
	b := FromLines([]string{"A", "## H1", "B", "## H2", "C"})

	cursor, err := b.MoveLine(2, 1, "B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"A", "B", "## H1", "## H2", "C"}
	if got := b.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if cursor != 1 {
		t.Errorf("cursor should rest on the insert line, got %d", cursor)
	}
}

func TestMoveLine_Down(t *testing.T) {
	// Moving A under H2 (last heading, so insert point is end of buffer):
	// delete happens first, then insert at the original index.
	b := FromLines([]string{"## H1", "A", "## H2", "B"})

	cursor, err := b.MoveLine(1, 4, "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"## H1", "## H2", "B", "A"}
	if got := b.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if cursor != 1 {
		t.Errorf("cursor should rest where the source line was, got %d", cursor)
	}
}

func TestMoveLine_SameIndex(t *testing.T) {
	b := FromLines([]string{"a", "b", "c"})
	cursor, err := b.MoveLine(1, 1, "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := b.Lines(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("moving a line onto itself should be stable, got %v", got)
	}
	if cursor != 1 {
		t.Errorf("got cursor %d", cursor)
	}
}

func TestMoveLine_LastLineDown(t *testing.T) {
	b := FromLines([]string{"## H", "x"})

	// Source is the final line and the insert point is past the end; the
	// clamped insert re-appends and the cursor stays on the last line.
	cursor, err := b.MoveLine(1, 2, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := b.Lines(); !reflect.DeepEqual(got, []string{"## H", "x"}) {
		t.Errorf("got %v", got)
	}
	if cursor != 1 {
		t.Errorf("cursor should clamp to len-1, got %d", cursor)
	}
}

func TestMoveLine_CountNeutral(t *testing.T) {
	cases := []struct {
		source, insert int
	}{
		{0, 3}, {3, 0}, {2, 2}, {1, 4}, {4, 1},
	}
	for _, c := range cases {
		b := FromLines([]string{"a", "b", "c", "d", "e"})
		before := b.Len()
		if _, err := b.MoveLine(c.source, c.insert, "moved"); err != nil {
			t.Fatalf("move %d->%d: %v", c.source, c.insert, err)
		}
		if b.Len() != before {
			t.Errorf("move %d->%d changed line count: %d -> %d", c.source, c.insert, before, b.Len())
		}
	}
}

func TestMoveLine_EmptyTextIsNoOp(t *testing.T) {
	for _, text := range []string{"", "   ", "\t", " \t "} {
		b := FromLines([]string{"a", "b"})
		_, err := b.MoveLine(0, 2, text)
		if !errors.Is(err, ErrEmptyText) {
			t.Errorf("text %q: expected ErrEmptyText, got %v", text, err)
		}
		if got := b.Lines(); !reflect.DeepEqual(got, []string{"a", "b"}) {
			t.Errorf("text %q: buffer mutated on no-op: %v", text, got)
		}
	}
}

func TestMoveLine_SourceOutOfRange(t *testing.T) {
	b := FromLines([]string{"a"})
	if _, err := b.MoveLine(3, 0, "x"); err == nil {
		t.Error("expected error for out-of-range source")
	}
	if _, err := b.MoveLine(-1, 0, "x"); err == nil {
		t.Error("expected error for negative source")
	}
}

func TestMoveLine_VerbatimText(t *testing.T) {
	b := FromLines([]string{"  padded  ", "## H"})
	if _, err := b.MoveLine(0, 2, "  padded  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	line, _ := b.Line(1)
	if line != "  padded  " {
		t.Errorf("moved text must not be trimmed, got %q", line)
	}
}

func TestSpliceText(t *testing.T) {
	tests := []struct {
		name string
		full string
		line int
		text string
		want string
	}{
		{"middle", "a\nb\n", 1, "x", "a\nx\nb\n"},
		{"append", "a\nb\n", 2, "x", "a\nb\nx\n"},
		{"empty document", "", 0, "x", "x\n"},
		{"no trailing newline gains one", "a\nb", 2, "x", "a\nb\nx\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpliceText(tt.full, tt.line, tt.text); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
