package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/project"
	"github.com/rwiggins1/adequate-c/internal/source"
	"github.com/rwiggins1/adequate-c/internal/version"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 2

// DiskCache хранит диагностики файлов на диске по ключу из хеша содержимого.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload: закешированный результат диагностики одного файла.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16 `msgpack:"schema"`

	Path        string             `msgpack:"path"`
	ContentHash project.Digest     `msgpack:"content_hash"`
	Diagnostics []CachedDiagnostic `msgpack:"diagnostics"`
	// отброшенные лимитом Bag, нужны для итоговой строки
	DroppedErrors   int `msgpack:"dropped_errors,omitempty"`
	DroppedWarnings int `msgpack:"dropped_warnings,omitempty"`
}

// CachedDiagnostic: diag.Diagnostic без FileID: файл восстанавливается при чтении.
type CachedDiagnostic struct {
	Phase    uint8        `msgpack:"phase"`
	Severity uint8        `msgpack:"severity"`
	Code     uint16       `msgpack:"code"`
	Message  string       `msgpack:"message"`
	Line     uint32       `msgpack:"line"`
	Column   uint32       `msgpack:"column"`
	Start    uint32       `msgpack:"start"`
	End      uint32       `msgpack:"end"`
	Notes    []CachedNote `msgpack:"notes,omitempty"`
}

type CachedNote struct {
	Start uint32 `msgpack:"start"`
	End   uint32 `msgpack:"end"`
	Msg   string `msgpack:"msg"`
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it when missing.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// CacheKey связывает содержимое файла с тем, что влияет на результат:
// схему кеша, версию инструмента и лимит диагностик.
func CacheKey(file *source.File, maxDiagnostics int) project.Digest {
	return project.Combine(project.Digest(file.Hash),
		strconv.Itoa(int(diskCacheSchemaVersion)),
		version.Version,
		strconv.Itoa(maxDiagnostics),
	)
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки: подкаталог "diag".
	return filepath.Join(c.dir, "diag", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	// после Rename временного файла уже нет, ошибку удаления игнорируем
	defer func() { _ = os.Remove(f.Name()) }()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
// Entries of another schema count as a miss.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func bagToPayload(file *source.File, bag *diag.Bag) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        file.Path,
		ContentHash: project.Digest(file.Hash),
		Diagnostics: make([]CachedDiagnostic, 0, bag.Len()),
	}
	payload.DroppedErrors, payload.DroppedWarnings = bag.DroppedCounts()
	for _, d := range bag.Items() {
		cd := CachedDiagnostic{
			Phase:    uint8(d.Phase),
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Line:     d.Line,
			Column:   d.Column,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	return payload
}

// payloadToBag восстанавливает диагностики, привязывая спаны к file.
func payloadToBag(file *source.File, payload *DiskPayload, max int) *diag.Bag {
	bag := diag.NewBag(max)
	bag.SetFilename(file.Path)
	for _, cd := range payload.Diagnostics {
		d := diag.Diagnostic{
			Phase:    diag.Phase(cd.Phase),
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Line:     cd.Line,
			Column:   cd.Column,
			Primary:  source.Span{File: file.ID, Start: cd.Start, End: cd.End},
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: source.Span{File: file.ID, Start: n.Start, End: n.End}, Msg: n.Msg})
		}
		bag.Add(d)
	}
	bag.AddDropped(payload.DroppedErrors, payload.DroppedWarnings)
	return bag
}
