package diag

import (
	"github.com/rwiggins1/adequate-c/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Phase    Phase
	Severity Severity
	Code     Code
	Message  string
	Filename string
	Line     uint32
	Column   uint32
	Primary  source.Span
	Notes    []Note
}

// IsWarning reports whether the diagnostic is a warning rather than an error.
func (d Diagnostic) IsWarning() bool {
	return d.Severity == SevWarning
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
