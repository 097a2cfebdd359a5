package diag

import (
	"rill/internal/source"
)

// Note is a secondary message attached to a diagnostic. A zero Span means
// the note has no source location and is rendered as plain text.
type Note struct {
	Span source.Span
	Msg  string
}

// HasSpan reports whether the note carries a usable source location.
func (n Note) HasSpan() bool {
	return n.Span != source.Span{}
}

// Label annotates a span inside the already-reported source region with a
// short inline message (rendered next to the underlined code).
type Label struct {
	Span source.Span
	Msg  string
}

// Diagnostic is the central record produced by the reporting pass.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Labels   []Label
	Helps    []string
}
