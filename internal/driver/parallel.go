package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/source"
	"github.com/rwiggins1/adequate-c/internal/trace"
)

// ParseDirResult содержит результат парсинга одного файла
type ParseDirResult struct {
	Path   string        // путь к файлу
	FileID source.FileID // ID файла в общем FileSet
	Parse  *ParseResult  // nil, если файл не загрузился
	Bag    *diag.Bag     // диагностики файла (включая ошибку загрузки)
}

// ListSourceFiles возвращает отсортированный список всех *.adc файлов в директории
func ListSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// скрытые каталоги (.git, .cache) пропускаем
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ParseDir разбирает все *.adc файлы директории параллельно.
// Файлы загружаются в общий FileSet до старта воркеров; воркеры его только читают.
// У каждого файла свои Lexer, Parser, Builder и Bag. Результаты упорядочены по пути.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []ParseDirResult, error) {
	ctx, span := trace.BeginCtx(ctx, trace.ScopeDriver, "parse_dir")
	defer span.End(dir)

	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	loadDone := opts.Timer.Track("load")
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}
	loadDone(fmt.Sprintf("%d files", len(files)))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]ParseDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.SetFilename(path)
				bag.Error(diag.PhaseLexer, diag.IOLoadFileError, source.Span{}, 0, 0, "failed to load file: "+loadErr.Error())
				results[i] = ParseDirResult{Path: path, Bag: bag}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			fctx, fileSpan := trace.BeginCtx(trace.WithFile(gctx, path), trace.ScopeFile, "file")
			started := time.Now()
			emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})

			res := parseFile(fctx, fileSet, fileSet.Get(fileIDs[path]), opts)
			results[i] = ParseDirResult{
				Path:   path,
				FileID: fileIDs[path],
				Parse:  res,
				Bag:    res.Bag,
			}

			status := StatusDone
			if res.Bag.HasErrors() {
				status = StatusError
			}
			fileSpan.End(string(status))
			emit(opts.Progress, Event{File: path, Stage: StageParse, Status: status, Elapsed: time.Since(started)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fileSet, results, nil
}

// MergeBags собирает диагностики всех файлов в один Bag в порядке путей.
func MergeBags(results []ParseDirResult) *diag.Bag {
	merged := diag.NewBag(0)
	for _, r := range results {
		merged.Merge(r.Bag)
	}
	return merged
}
