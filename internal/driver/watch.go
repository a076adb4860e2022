package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rwiggins1/adequate-c/internal/trace"
)

// DefaultDebounce merges the burst of events an editor save produces.
const DefaultDebounce = 100 * time.Millisecond

// Watcher следит за исходниками и отдаёт пачки изменённых путей.
// Для файла наблюдается его каталог: редакторы часто сохраняют через rename.
type Watcher struct {
	w        *fsnotify.Watcher
	files    map[string]bool // явно указанные файлы
	roots    []string        // каталоги, наблюдаемые рекурсивно
	Debounce time.Duration
}

// NewWatcher registers watches for every path before returning, so changes made
// after it returns are observed by Run.
func NewWatcher(paths []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{w: fw, files: make(map[string]bool), Debounce: DefaultDebounce}
	for _, p := range paths {
		if err := w.add(p); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	if !info.IsDir() {
		w.files[abs] = true
		return w.w.Add(filepath.Dir(abs))
	}
	w.roots = append(w.roots, abs)
	return w.addTree(abs)
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.w.Add(path)
	})
}

// relevant: исходник, лежащий под одним из корней, или явно указанный файл.
func (w *Watcher) relevant(path string) bool {
	if w.files[path] {
		return true
	}
	if !strings.HasSuffix(path, SourceExt) {
		return false
	}
	for _, root := range w.roots {
		if strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run delivers sorted batches of changed paths to onChange until ctx is done.
// Removed files are reported too; the callback decides what to do with them.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	flush := func() {
		if len(pending) == 0 {
			return
		}
		batch := make([]string, 0, len(pending))
		for p := range pending {
			batch = append(batch, p)
		}
		sort.Strings(batch)
		clear(pending)
		trace.Point(trace.FromContext(ctx), trace.ScopeDriver, "watch_batch", strings.Join(batch, ","), false)
		onChange(batch)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && len(w.roots) > 0 {
					if err := w.addTree(ev.Name); err != nil && !errors.Is(err, fs.ErrNotExist) {
						return fmt.Errorf("watch %s: %w", ev.Name, err)
					}
				}
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 || !w.relevant(ev.Name) {
				continue
			}
			pending[ev.Name] = struct{}{}
			if w.Debounce <= 0 {
				flush()
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
				fire = timer.C
			}
		case <-fire:
			timer, fire = nil, nil
			flush()
		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		}
	}
}

func (w *Watcher) Close() error {
	return w.w.Close()
}

// Watch is NewWatcher plus Run; the watcher is closed on return.
func Watch(ctx context.Context, paths []string, onChange func(paths []string)) error {
	w, err := NewWatcher(paths)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()
	return w.Run(ctx, onChange)
}
