// Package diag defines the diagnostic model shared by the lexer and parser.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Phase – which stage produced it (Lexer, Parser, Semantic, Codegen).
//   - Severity – Info, Warning or Error.
//   - Code – numeric identifier with a stable string form (see codes.go).
//   - Message – short human oriented text.
//   - Filename, Line, Column – the position as the producer saw it.
//   - Primary span – byte range inside the source.FileSet.
//   - Notes – optional secondary spans with extra context.
//
// # Emitting diagnostics
//
// Phases talk to a Reporter. BagReporter appends into a Bag, DedupReporter
// filters repeated entries, ReportBuilder lets a caller attach notes before Emit.
// Records are appended in arrival order and never mutated afterwards.
//
// Package diag does no formatting beyond the one-line summary and the short
// golden form; renderers live in internal/diagfmt.
package diag
