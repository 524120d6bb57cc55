package target

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		locked  string
		active  string
		want    string
		wantErr error
	}{
		{"lock overrides active", "pinned.md", "open.md", "pinned.md", nil},
		{"no lock falls back to active", "", "open.md", "open.md", nil},
		{"neither", "", "", "", ErrNoTarget},
		{"locked non-markdown", "notes.txt", "open.md", "", ErrInvalidTarget},
		{"active non-markdown", "", "image.png", "", ErrInvalidTarget},
		{"markdown long extension", "", "doc.markdown", "doc.markdown", nil},
		{"case insensitive extension", "A.MD", "", "A.MD", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.locked, tt.active)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error: got %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
