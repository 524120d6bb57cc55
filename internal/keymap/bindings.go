package keymap

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings
		{Key: "q", Command: "quit", Context: "global"},
		{Key: "ctrl+c", Command: "quit", Context: "global"},
		{Key: "ctrl+b", Command: "toggle-bar", Context: "global"},
		{Key: "?", Command: "toggle-help", Context: "global"},
		{Key: "j", Command: "cursor-down", Context: "global"},
		{Key: "down", Command: "cursor-down", Context: "global"},
		{Key: "k", Command: "cursor-up", Context: "global"},
		{Key: "up", Command: "cursor-up", Context: "global"},
		{Key: "g", Command: "cursor-top", Context: "global"},
		{Key: "G", Command: "cursor-bottom", Context: "global"},
		{Key: "ctrl+d", Command: "page-down", Context: "global"},
		{Key: "ctrl+u", Command: "page-up", Context: "global"},
		{Key: "esc", Command: "back", Context: "global"},

		// Document context (active note)
		{Key: "v", Command: "toggle-select", Context: "document"},
		{Key: "s", Command: "send-line", Context: "document"},
		{Key: "S", Command: "send-selection", Context: "document"},
		{Key: "c", Command: "send-clipboard", Context: "document"},
		{Key: "m", Command: "toggle-copy-mode", Context: "document"},
		{Key: "h", Command: "pick-heading", Context: "document"},
		{Key: "t", Command: "pick-target", Context: "document"},
		{Key: "L", Command: "toggle-lock", Context: "document"},
		{Key: "p", Command: "preview-target", Context: "document"},
		{Key: "o", Command: "open-file", Context: "document"},
		{Key: "r", Command: "refresh", Context: "document"},

		// Selection context (visual line range active)
		{Key: "esc", Command: "clear-select", Context: "selection"},
		{Key: "v", Command: "clear-select", Context: "selection"},
		{Key: "s", Command: "send-selection", Context: "selection"},
		{Key: "enter", Command: "send-selection", Context: "selection"},

		// Heading picker context
		{Key: "esc", Command: "cancel", Context: "heading-picker"},
		{Key: "enter", Command: "select", Context: "heading-picker"},
		{Key: "up", Command: "cursor-up", Context: "heading-picker"},
		{Key: "down", Command: "cursor-down", Context: "heading-picker"},
		{Key: "ctrl+p", Command: "cursor-up", Context: "heading-picker"},
		{Key: "ctrl+n", Command: "cursor-down", Context: "heading-picker"},

		// File picker context
		{Key: "esc", Command: "cancel", Context: "file-picker"},
		{Key: "enter", Command: "select", Context: "file-picker"},
		{Key: "up", Command: "cursor-up", Context: "file-picker"},
		{Key: "down", Command: "cursor-down", Context: "file-picker"},
		{Key: "ctrl+p", Command: "cursor-up", Context: "file-picker"},
		{Key: "ctrl+n", Command: "cursor-down", Context: "file-picker"},

		// Target preview context
		{Key: "esc", Command: "close-preview", Context: "preview"},
		{Key: "q", Command: "close-preview", Context: "preview"},
		{Key: "p", Command: "close-preview", Context: "preview"},
		{Key: "j", Command: "scroll-down", Context: "preview"},
		{Key: "k", Command: "scroll-up", Context: "preview"},
		{Key: "down", Command: "scroll-down", Context: "preview"},
		{Key: "up", Command: "scroll-up", Context: "preview"},
		{Key: "g", Command: "scroll-top", Context: "preview"},
		{Key: "G", Command: "scroll-bottom", Context: "preview"},
	}
}

// RegisterDefaults registers all default bindings with the registry.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.RegisterBinding(b)
	}
}
