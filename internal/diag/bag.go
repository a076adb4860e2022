package diag

import (
	"fmt"
	"sort"

	"github.com/rwiggins1/adequate-c/internal/source"
)

// Bag is the ordered diagnostic log of one compilation unit.
type Bag struct {
	items    []Diagnostic
	max      int // 0 = unlimited
	filename string
	errors   int // включая отброшенные лимитом
	warnings int
	dropped  int // не записано из-за лимита
}

// NewBag creates a Bag that keeps at most max diagnostics; max <= 0 means no limit.
func NewBag(max int) *Bag {
	if max < 0 {
		max = 0
	}
	capHint := max
	if capHint == 0 || capHint > 64 {
		capHint = 8
	}
	return &Bag{
		items: make([]Diagnostic, 0, capHint),
		max:   max,
	}
}

// SetFilename sets the name stamped on diagnostics that arrive without one.
func (b *Bag) SetFilename(name string) {
	b.filename = name
}

func (b *Bag) Filename() string {
	return b.filename
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит);
// в счётчиках она всё равно учитывается.
func (b *Bag) Add(d Diagnostic) bool {
	b.count(d.Severity, 1)
	if b.max > 0 && len(b.items) >= b.max {
		b.dropped++
		return false
	}
	if d.Filename == "" {
		d.Filename = b.filename
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) count(sev Severity, n int) {
	switch sev {
	case SevError:
		b.errors += n
	case SevWarning:
		b.warnings += n
	}
}

// AddDropped accounts for diagnostics that were reported but not recorded,
// e.g. when restoring a bag from a cache.
func (b *Bag) AddDropped(errors, warnings int) {
	b.errors += errors
	b.warnings += warnings
	b.dropped += errors + warnings
}

// Dropped reports how many diagnostics the limit kept out of Items.
func (b *Bag) Dropped() int {
	return b.dropped
}

// DroppedCounts splits Dropped into errors and warnings.
func (b *Bag) DroppedCounts() (errors, warnings int) {
	recErr, recWarn := 0, 0
	for _, d := range b.items {
		switch d.Severity {
		case SevError:
			recErr++
		case SevWarning:
			recWarn++
		}
	}
	return b.errors - recErr, b.warnings - recWarn
}

// Error records an error-severity diagnostic.
func (b *Bag) Error(phase Phase, code Code, span source.Span, line, col uint32, msg string) bool {
	return b.Add(Diagnostic{
		Phase: phase, Severity: SevError, Code: code, Message: msg,
		Line: line, Column: col, Primary: span,
	})
}

// Warning records a warning-severity diagnostic.
func (b *Bag) Warning(phase Phase, code Code, span source.Span, line, col uint32, msg string) bool {
	return b.Add(Diagnostic{
		Phase: phase, Severity: SevWarning, Code: code, Message: msg,
		Line: line, Column: col, Primary: span,
	})
}

// Cap returns the configured limit, 0 when unlimited.
func (b *Bag) Cap() int {
	return b.max
}

func (b *Bag) HasErrors() bool {
	return b.errors > 0
}

func (b *Bag) HasWarnings() bool {
	return b.warnings > 0
}

func (b *Bag) ErrorCount() int {
	return b.errors
}

func (b *Bag) WarningCount() int {
	return b.warnings
}

// длина
func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Clear drops every record and resets the counters. The filename is kept.
func (b *Bag) Clear() {
	b.items = b.items[:0]
	b.errors = 0
	b.warnings = 0
	b.dropped = 0
}

// Merge appends all diagnostics of other, raising the limit if needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if b.max > 0 && len(b.items)+len(other.items) > b.max {
		b.max = len(b.items) + len(other.items)
	}
	for _, d := range other.items {
		b.Add(d)
	}
	b.AddDropped(other.DroppedCounts())
}

// Sort orders diagnostics by file, line, column, severity (desc) and code
// for deterministic output across files.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Filename != dj.Filename {
			return di.Filename < dj.Filename
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// простая дедупликация (по Code+Primary)
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	kept := make([]Diagnostic, 0, len(b.items))
	b.errors, b.warnings = b.DroppedCounts()
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s:%s", d.Code.ID(), d.Filename, d.Primary.String())
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, d)
		b.count(d.Severity, 1)
	}
	b.items = kept
}

// Summary returns the closing line printed after the diagnostics list,
// or "" when the bag holds no errors and no warnings. Counts include
// diagnostics dropped by the limit.
func Summary(b *Bag) string {
	if b == nil || (b.errors == 0 && b.warnings == 0) {
		return ""
	}
	var s string
	if b.errors > 0 {
		s = fmt.Sprintf("Compilation failed with %d error(s)", b.errors)
		if b.warnings > 0 {
			s += fmt.Sprintf(", %d warning(s)", b.warnings)
		}
	} else {
		s = fmt.Sprintf("Compilation succeeded with %d warning(s)", b.warnings)
	}
	if b.dropped > 0 {
		s += fmt.Sprintf(" (%d not shown)", b.dropped)
	}
	return s
}
