package driver

import (
	"context"

	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/project"
	"github.com/rwiggins1/adequate-c/internal/source"
	"github.com/rwiggins1/adequate-c/internal/trace"
)

type DiagnoseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag
	// Parse is nil when the diagnostics came from the cache.
	Parse  *ParseResult
	Cached bool
}

// Diagnose разбирает файл ради диагностик. С opts.Cache результат берётся из
// кеша, если содержимое файла не менялось, и записывается туда после разбора.
// Ошибка записи в кеш не делает прогон неудачным: она уходит в трассировку.
func Diagnose(ctx context.Context, path string, opts Options) (*DiagnoseResult, error) {
	ctx, span := trace.BeginCtx(trace.WithFile(ctx, path), trace.ScopeDriver, "diagnose")
	outcome := "parsed"
	defer func() { span.End(outcome) }()

	fs := source.NewFileSet()
	file, err := loadFile(ctx, fs, path, opts.Timer)
	if err != nil {
		outcome = "load failed"
		return nil, err
	}

	if opts.Cache == nil {
		res := parseFile(ctx, fs, file, opts)
		return &DiagnoseResult{FileSet: fs, File: file, Bag: res.Bag, Parse: res}, nil
	}

	key := CacheKey(file, opts.MaxDiagnostics)
	var payload DiskPayload
	hit, err := opts.Cache.Get(key, &payload)
	if err != nil {
		trace.PointCtx(ctx, trace.ScopeDriver, "cache_read", err.Error(), true)
	}
	if hit && payload.ContentHash == project.Digest(file.Hash) {
		outcome = "cache hit"
		return &DiagnoseResult{
			FileSet: fs,
			File:    file,
			Bag:     payloadToBag(file, &payload, opts.MaxDiagnostics),
			Cached:  true,
		}, nil
	}

	res := parseFile(ctx, fs, file, opts)
	if err := opts.Cache.Put(key, bagToPayload(file, res.Bag)); err != nil {
		trace.PointCtx(ctx, trace.ScopeDriver, "cache_write", err.Error(), true)
	}
	return &DiagnoseResult{FileSet: fs, File: file, Bag: res.Bag, Parse: res}, nil
}
