package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"github.com/rwiggins1/adequate-c/internal/ast"
	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/lexer"
	"github.com/rwiggins1/adequate-c/internal/parser"
	"github.com/rwiggins1/adequate-c/internal/source"
	"github.com/rwiggins1/adequate-c/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	// FileID: узел файла; при ошибках дерево частичное, см. Root.
	FileID ast.FileID
	Bag    *diag.Bag

	result parser.Result
}

// Root returns the file node only when neither lexer nor parser reported errors.
func (r *ParseResult) Root() (ast.FileID, bool) {
	if r == nil {
		return ast.NoFileID, false
	}
	return r.result.Root()
}

// Parse загружает и разбирает один файл.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	ctx, span := trace.BeginCtx(ctx, trace.ScopeDriver, "parse")
	defer span.End(path)

	fs := source.NewFileSet()
	file, err := loadFile(ctx, fs, path, opts.Timer)
	if err != nil {
		return nil, err
	}
	return parseFile(ctx, fs, file, opts), nil
}

// ParseSource parses in-memory text with default options.
func ParseSource(name, src string) *ParseResult {
	return ParseSourceWith(context.Background(), name, src, Options{})
}

func ParseSourceWith(ctx context.Context, name, src string, opts Options) *ParseResult {
	fs := source.NewFileSet()
	return parseFile(ctx, fs, addSource(fs, name, src), opts)
}

// parseFile runs lexer and parser over an already loaded file. The lexer is
// pulled by the parser, so lexing time is part of the parse phase.
func parseFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *ParseResult {
	_, span := trace.BeginCtx(ctx, trace.ScopePhase, "parse")
	done := opts.Timer.Track("parse")

	bag := diag.NewBag(opts.MaxDiagnostics)
	bag.SetFilename(file.Path)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	lx := lexer.New(file, lexer.Options{Reporter: rep})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	popts := parser.Options{
		Reporter:  rep,
		MaxErrors: opts.maxErrors(),
	}
	res := parser.ParseFile(lx, builder, popts)
	if n := res.Unreported(popts); n > 0 {
		unreported, err := safecast.Conv[int](n)
		if err != nil {
			panic(fmt.Errorf("unreported errors overflow: %w", err))
		}
		bag.AddDropped(unreported, 0)
	}

	note := fmt.Sprintf("%s: %d diagnostics", file.Path, bag.Len())
	if n := rep.Suppressed(); n > 0 {
		note += fmt.Sprintf(", %d repeats dropped", n)
	}
	done(note)
	span.End(note)
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		FileID:  res.File,
		Bag:     bag,
		result:  res,
	}
}
