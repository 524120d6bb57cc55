// Package format renders extracted text through user-configured templates
// before it is sent to a target note.
package format

import "strings"

// SourceKind identifies where the text being sent came from. It is a closed
// set; each kind has its own template and carries its own context fields.
type SourceKind int

const (
	// KindDocument is text from a plain markdown document.
	KindDocument SourceKind = iota
	// KindPage is text from a fixed-page document (a page number is known).
	KindPage
	// KindWeb is text captured from a web page.
	KindWeb
)

// String returns the config-facing name of the kind.
func (k SourceKind) String() string {
	switch k {
	case KindPage:
		return "page"
	case KindWeb:
		return "web"
	default:
		return "document"
	}
}

// Context describes the source of the text being formatted. Only the fields
// relevant to Kind are meaningful.
type Context struct {
	Kind SourceKind
	File string // source document name (KindDocument, KindPage)
	Page string // page number (KindPage)
	URL  string // source address (KindWeb)
}

// Templates holds one template string per source kind. Templates may use the
// placeholders {{text}}, {{file}}, {{page}} and {{url}}.
type Templates struct {
	Document string `json:"document"`
	Page     string `json:"page"`
	Web      string `json:"web"`
}

// DefaultTemplates returns the out-of-the-box templates.
func DefaultTemplates() Templates {
	return Templates{
		Document: "{{text}}",
		Page:     "{{text}} ({{file}}, p. {{page}})",
		Web:      "{{text}} ({{url}})",
	}
}

// forKind selects the template for a source kind.
func (t Templates) forKind(k SourceKind) string {
	switch k {
	case KindPage:
		return t.Page
	case KindWeb:
		return t.Web
	default:
		return t.Document
	}
}

// Apply substitutes the context into the template for ctx.Kind and returns
// the formatted text. When enabled is false it is the identity function.
//
// Substitution is a single pass replacing only the first occurrence of each
// placeholder; a repeated placeholder stays verbatim past its first use, and
// placeholders with no value in the context are left untouched. There is no
// nested or recursive expansion.
func Apply(raw string, ctx Context, tpl Templates, enabled bool) string {
	if !enabled {
		return raw
	}
	out := tpl.forKind(ctx.Kind)
	out = strings.Replace(out, "{{text}}", raw, 1)
	if ctx.File != "" {
		out = strings.Replace(out, "{{file}}", ctx.File, 1)
	}
	if ctx.Page != "" {
		out = strings.Replace(out, "{{page}}", ctx.Page, 1)
	}
	if ctx.URL != "" {
		out = strings.Replace(out, "{{url}}", ctx.URL, 1)
	}
	return out
}
