package driver

import (
	"context"
	"fmt"

	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/lexer"
	"github.com/rwiggins1/adequate-c/internal/observ"
	"github.com/rwiggins1/adequate-c/internal/source"
	"github.com/rwiggins1/adequate-c/internal/token"
	"github.com/rwiggins1/adequate-c/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize загружает файл и прогоняет его через лексер целиком.
// Ошибкой возвращается только проблема чтения; лексические ошибки лежат в Bag.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	ctx, span := trace.BeginCtx(ctx, trace.ScopeDriver, "tokenize")
	defer span.End(path)

	fs := source.NewFileSet()
	file, err := loadFile(ctx, fs, path, opts.Timer)
	if err != nil {
		return nil, err
	}
	return tokenizeFile(ctx, fs, file, opts), nil
}

// TokenizeSource is Tokenize over in-memory text registered as a virtual file.
func TokenizeSource(ctx context.Context, name, src string, opts Options) *TokenizeResult {
	fs := source.NewFileSet()
	return tokenizeFile(ctx, fs, addSource(fs, name, src), opts)
}

func tokenizeFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *TokenizeResult {
	_, span := trace.BeginCtx(ctx, trace.ScopePhase, "lex")
	done := opts.Timer.Track("lex")

	bag := diag.NewBag(opts.MaxDiagnostics)
	bag.SetFilename(file.Path)
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	note := fmt.Sprintf("%d tokens", len(tokens))
	done(note)
	span.End(note)
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}

func loadFile(ctx context.Context, fs *source.FileSet, path string, timer *observ.Timer) (*source.File, error) {
	_, span := trace.BeginCtx(ctx, trace.ScopePhase, "load")
	done := timer.Track("load")
	id, err := fs.Load(path)
	done(path)
	if err != nil {
		span.End("error")
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	span.End(path)
	return fs.Get(id), nil
}

// addSource normalises src the way FileSet.Load does and registers it as virtual.
func addSource(fs *source.FileSet, name, src string) *source.File {
	content, flags := source.Normalize([]byte(src))
	return fs.Get(fs.Add(name, content, flags|source.FileVirtual))
}
