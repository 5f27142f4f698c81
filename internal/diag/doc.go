// Package diag is the diagnostic model shared by the compiler (which also
// reports the lexer's error tokens) and the VM.
//
// Diagnostic is the central record: a Severity, a stable numeric Code, a
// human message, a primary source.Span, and optional Notes for secondary
// context. Producers emit through a Reporter (commonly a BagReporter backed
// by a Bag) rather than writing to stderr directly, which is what lets the
// compiler collect every compile error from one pass before the CLI renders
// them (spec: "compile errors are collected so multiple errors can be
// reported in one pass").
package diag
