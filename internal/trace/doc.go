// Package trace records what the front end is doing as begin/end spans and
// instant points: CLI commands, the load/lex/parse phases and, in directory
// runs, the work on each file.
//
//	adequate diag --trace=- --trace-level=detail src/
//
// The tracer and the enclosing span travel in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx = trace.WithFile(ctx, "src/main.adc")
//	ctx, span := trace.BeginCtx(ctx, trace.ScopePhase, "parse")
//	defer span.End("")
//
// Spans begun from ctx record the file and their parent span. Storage is a
// stream (file or stderr), an in-memory ring dumped on panic, or both.
package trace
