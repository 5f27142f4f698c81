package diag

import "loxvm/internal/source"

// Note is secondary context attached to a Diagnostic (e.g. "class declared
// here" pointing at the class's name span).
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single lexical, compile-time, or runtime finding.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
