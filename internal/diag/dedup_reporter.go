package diag

import "github.com/rwiggins1/adequate-c/internal/source"

// site: место диагностики: файл, начало primary-спана и код.
type site struct {
	file  source.FileID
	start uint32
	code  Code
}

// DedupReporter forwards a diagnostic only the first time its code is reported
// at a given position. Parser recovery can revisit the same token and report
// the same problem twice; the repeats are counted, not forwarded.
type DedupReporter struct {
	next       Reporter
	seen       map[site]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[site]struct{})}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil {
		return
	}
	k := site{file: d.Primary.File, start: d.Primary.Start, code: d.Code}
	if _, dup := r.seen[k]; dup {
		r.suppressed++
		return
	}
	r.seen[k] = struct{}{}
	if r.next != nil {
		r.next.Report(d)
	}
}

// Suppressed reports how many repeats were dropped.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}
