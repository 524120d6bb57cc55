package keymap

import "testing"

func TestLookupContextWinsOverGlobal(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "s", Command: "send-line", Context: "document"})
	r.RegisterBinding(Binding{Key: "s", Command: "something-else", Context: "global"})

	cmd, ok := r.Lookup("s", "document")
	if !ok || cmd != "send-line" {
		t.Errorf("Lookup(s, document) = %q, %v; want send-line", cmd, ok)
	}
}

func TestLookupFallsBackToGlobal(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "q", Command: "quit", Context: "global"})

	cmd, ok := r.Lookup("q", "document")
	if !ok || cmd != "quit" {
		t.Errorf("Lookup(q, document) = %q, %v; want quit", cmd, ok)
	}
}

func TestLookupUnknownKey(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	if cmd, ok := r.Lookup("ctrl+alt+x", "document"); ok {
		t.Errorf("Lookup(ctrl+alt+x) = %q; want no match", cmd)
	}
}

func TestUserOverrideBeatsGlobal(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "q", Command: "quit", Context: "global"})
	r.SetUserOverride("q", "toggle-bar")

	cmd, ok := r.Lookup("q", "document")
	if !ok || cmd != "toggle-bar" {
		t.Errorf("Lookup(q) after override = %q, %v; want toggle-bar", cmd, ok)
	}
}

func TestUserOverrideDoesNotBeatContext(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "s", Command: "send-line", Context: "document"})
	r.SetUserOverride("s", "quit")

	cmd, ok := r.Lookup("s", "document")
	if !ok || cmd != "send-line" {
		t.Errorf("Lookup(s, document) = %q, %v; want send-line", cmd, ok)
	}
}

func TestBindingsForContextAppliesOverrides(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "q", Command: "quit", Context: "global"})
	r.SetUserOverride("q", "toggle-bar")

	for _, b := range r.BindingsForContext("global") {
		if b.Key == "q" && b.Command != "toggle-bar" {
			t.Errorf("global binding for q = %q; want toggle-bar", b.Command)
		}
	}
}

func TestDefaultsCoverCoreCommands(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	cases := []struct {
		key, context, want string
	}{
		{"s", "document", "send-line"},
		{"c", "document", "send-clipboard"},
		{"ctrl+b", "document", "toggle-bar"},
		{"enter", "heading-picker", "select"},
		{"esc", "file-picker", "cancel"},
		{"q", "preview", "close-preview"},
	}
	for _, tc := range cases {
		cmd, ok := r.Lookup(tc.key, tc.context)
		if !ok || cmd != tc.want {
			t.Errorf("Lookup(%q, %q) = %q, %v; want %q", tc.key, tc.context, cmd, ok, tc.want)
		}
	}
}
