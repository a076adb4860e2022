// Package driver wires source loading, lexing and parsing into runs over files
// and directories: single files, parallel directory parses, a diagnostics
// disk cache and a watch loop for the CLI.
package driver

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/rwiggins1/adequate-c/internal/observ"
)

// SourceExt is the extension ParseDir and Watch pick up.
const SourceExt = ".adc"

// Options: общие настройки прогона.
type Options struct {
	// MaxDiagnostics ограничивает Bag каждого файла; 0 = без ограничения.
	MaxDiagnostics int
	// Jobs: параллелизм ParseDir; <= 0 означает GOMAXPROCS.
	Jobs int
	// Timer collects phase durations for --timings; may be nil.
	Timer *observ.Timer
	// Progress receives per-file events from ParseDir; may be nil.
	Progress ProgressSink
	// Cache is consulted by Diagnose; nil disables caching.
	Cache *DiskCache
}

func (o Options) maxErrors() uint {
	if o.MaxDiagnostics <= 0 {
		return 0
	}
	n, err := safecast.Conv[uint](o.MaxDiagnostics)
	if err != nil {
		panic(fmt.Errorf("max diagnostics overflow: %w", err))
	}
	return n
}
