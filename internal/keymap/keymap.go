// Package keymap maps key presses to command identifiers per context.
package keymap

import "sync"

// Binding associates a key with a command in a context.
type Binding struct {
	Key     string // bubbletea key string, e.g. "ctrl+b" or "g"
	Command string // command identifier dispatched by the app
	Context string // "global" applies everywhere as a fallback
}

// Registry holds key bindings and user overrides.
type Registry struct {
	mu        sync.RWMutex
	bindings  map[string]map[string]string // context -> key -> command
	overrides map[string]string            // key -> command, applies in the global context
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings:  make(map[string]map[string]string),
		overrides: make(map[string]string),
	}
}

// RegisterBinding adds a binding. A later binding for the same key and
// context replaces the earlier one.
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ctx := r.bindings[b.Context]
	if ctx == nil {
		ctx = make(map[string]string)
		r.bindings[b.Context] = ctx
	}
	ctx[b.Key] = b.Command
}

// SetUserOverride rebinds a key in the global context.
func (r *Registry) SetUserOverride(key, command string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[key] = command
}

// Lookup resolves a key press in the given context. Context bindings win
// over global ones; user overrides win over default global bindings.
func (r *Registry) Lookup(key, context string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if ctx, ok := r.bindings[context]; ok {
		if cmd, ok := ctx[key]; ok {
			return cmd, true
		}
	}
	if cmd, ok := r.overrides[key]; ok {
		return cmd, true
	}
	if global, ok := r.bindings["global"]; ok {
		if cmd, ok := global[key]; ok {
			return cmd, true
		}
	}
	return "", false
}

// BindingsForContext returns the bindings registered for a context,
// with user overrides applied for the global context.
func (r *Registry) BindingsForContext(context string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctx := r.bindings[context]
	out := make([]Binding, 0, len(ctx))
	for key, cmd := range ctx {
		if context == "global" {
			if ov, ok := r.overrides[key]; ok {
				cmd = ov
			}
		}
		out = append(out, Binding{Key: key, Command: cmd, Context: context})
	}
	return out
}
